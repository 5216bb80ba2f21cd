package domain

import (
	"bytes"
	"strings"
)

// Line is a single document line with its terminator. End is "\n", "\r\n",
// or empty for an unterminated final line.
type Line struct {
	Text string
	End  string
}

// Document is the ordered line sequence of a configuration file. Bytes
// reproduces the original input exactly until a line is rewritten.
type Document struct {
	lines []Line
}

// ParseDocument splits raw file contents into lines, keeping each line's
// terminator.
func ParseDocument(data []byte) *Document {
	var lines []Line
	rest := string(data)
	for len(rest) > 0 {
		idx := strings.IndexByte(rest, '\n')
		if idx < 0 {
			lines = append(lines, Line{Text: rest})
			break
		}
		text, end := rest[:idx], "\n"
		if strings.HasSuffix(text, "\r") {
			text, end = text[:len(text)-1], "\r\n"
		}
		lines = append(lines, Line{Text: text, End: end})
		rest = rest[idx+1:]
	}
	return &Document{lines: lines}
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Bytes serializes the document back to file contents.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, line := range d.lines {
		buf.WriteString(line.Text)
		buf.WriteString(line.End)
	}
	return buf.Bytes()
}

// StampVersion replaces every line starting with marker by the marker
// followed by the quoted version. Each replaced line keeps its own
// terminator; all other lines stay untouched. It returns the number of
// lines replaced.
func (d *Document) StampVersion(marker, version string) int {
	replaced := 0
	for i := range d.lines {
		if strings.HasPrefix(d.lines[i].Text, marker) {
			d.lines[i].Text = marker + `"` + version + `"`
			replaced++
		}
	}
	return replaced
}
