package orchestrator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
)

// Mock for TagDescriber
type mockTagDescriber struct{ mock.Mock }

func (m *mockTagDescriber) Describe(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Fake filesystem whose temp files reject writes after creation
type failWriteFs struct {
	afero.Fs
}

func (f *failWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(name, ".tmp") {
		return &failWriteFile{File: file}, nil
	}
	return file, nil
}

type failWriteFile struct {
	afero.File
}

func (f *failWriteFile) Write(p []byte) (int, error) {
	return 0, fmt.Errorf("no space left on device")
}
