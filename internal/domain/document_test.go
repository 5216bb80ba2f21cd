package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	t.Run("Should round-trip content byte for byte", func(t *testing.T) {
		inputs := []string{
			"[plugin]\nname=\"demo\"\nversion=\"1.0.0\"\n",
			"a\r\nb\r\n",
			"a\nb",
			"mixed\r\nendings\nhere",
			"\n",
			"",
		}
		for _, input := range inputs {
			doc := ParseDocument([]byte(input))
			assert.Equal(t, input, string(doc.Bytes()))
		}
	})
	t.Run("Should count an unterminated final line", func(t *testing.T) {
		doc := ParseDocument([]byte("a\nb"))
		assert.Equal(t, 2, doc.Len())
	})
	t.Run("Should parse an empty file as zero lines", func(t *testing.T) {
		doc := ParseDocument(nil)
		assert.Zero(t, doc.Len())
		assert.Empty(t, doc.Bytes())
	})
}

func TestDocument_StampVersion(t *testing.T) {
	t.Run("Should replace the version assignment and keep other lines", func(t *testing.T) {
		doc := ParseDocument([]byte("[plugin]\nname=\"demo\"\nversion=\"0.0.0\"\nscript=\"plugin.gd\"\n"))
		replaced := doc.StampVersion("version=", "v2.0.0-14+gdeadbe")
		require.Equal(t, 1, replaced)
		assert.Equal(t,
			"[plugin]\nname=\"demo\"\nversion=\"v2.0.0-14+gdeadbe\"\nscript=\"plugin.gd\"\n",
			string(doc.Bytes()))
	})
	t.Run("Should replace every matching line", func(t *testing.T) {
		doc := ParseDocument([]byte("version=\"a\"\nname=\"x\"\nversion=\"b\"\n"))
		replaced := doc.StampVersion("version=", "v1.0.0")
		require.Equal(t, 2, replaced)
		assert.Equal(t, "version=\"v1.0.0\"\nname=\"x\"\nversion=\"v1.0.0\"\n", string(doc.Bytes()))
	})
	t.Run("Should return zero and leave the document alone when nothing matches", func(t *testing.T) {
		input := "name=\"plugin\"\nauthor=\"x\"\n"
		doc := ParseDocument([]byte(input))
		replaced := doc.StampVersion("version=", "v1.0.0")
		assert.Zero(t, replaced)
		assert.Equal(t, input, string(doc.Bytes()))
	})
	t.Run("Should not match lines with leading whitespace", func(t *testing.T) {
		input := "  version=\"indented\"\n\tversion=\"tabbed\"\n"
		doc := ParseDocument([]byte(input))
		replaced := doc.StampVersion("version=", "v1.0.0")
		assert.Zero(t, replaced)
		assert.Equal(t, input, string(doc.Bytes()))
	})
	t.Run("Should keep each line's own terminator", func(t *testing.T) {
		doc := ParseDocument([]byte("version=\"a\"\r\nname=\"x\"\nversion=\"b\""))
		replaced := doc.StampVersion("version=", "v1.0.0")
		require.Equal(t, 2, replaced)
		assert.Equal(t, "version=\"v1.0.0\"\r\nname=\"x\"\nversion=\"v1.0.0\"", string(doc.Bytes()))
	})
	t.Run("Should preserve line count and order", func(t *testing.T) {
		doc := ParseDocument([]byte("a\nversion=\"x\"\nb\nc\n"))
		before := doc.Len()
		doc.StampVersion("version=", "v1.0.0")
		assert.Equal(t, before, doc.Len())
		assert.Equal(t, "a\nversion=\"v1.0.0\"\nb\nc\n", string(doc.Bytes()))
	})
}
