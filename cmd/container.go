package cmd

import (
	"fmt"
	"os/exec"

	"github.com/verstamp/verstamp/internal/config"
	"github.com/verstamp/verstamp/internal/repository"
	"github.com/verstamp/verstamp/internal/service"
)

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	fsRepo repository.FileSystemRepository
}

// newContainer creates a new container with all the dependencies. The
// git repository itself is not opened here so commands that never
// touch git keep working outside a repository.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &container{
		cfg:    cfg,
		fsRepo: repository.NewOsFileSystem(),
	}, nil
}

// describer returns the tag describer for the configured backend. The
// auto backend prefers the git CLI and falls back to the built-in
// implementation when git is not installed.
func (c *container) describer() (repository.TagDescriber, error) {
	backend := c.cfg.Git.Backend
	if backend == config.BackendAuto {
		if _, err := exec.LookPath("git"); err == nil {
			backend = config.BackendCLI
		} else {
			backend = config.BackendNative
		}
	}
	switch backend {
	case config.BackendCLI:
		return service.NewGitService(c.cfg.Git.Abbrev, c.cfg.Git.Timeout), nil
	case config.BackendNative:
		return repository.NewGitDescriber(c.cfg.Git.Abbrev)
	default:
		return nil, fmt.Errorf("unknown git backend: %s", backend)
	}
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(newStampCmd(c))
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
