package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
	"github.com/verstamp/verstamp/internal/domain"
	"github.com/verstamp/verstamp/internal/repository"
	"github.com/verstamp/verstamp/internal/usecase"
	"go.uber.org/zap"
)

// StampConfig contains configuration for the stamp workflow.
type StampConfig struct {
	File        string
	Marker      string
	DryRun      bool
	Quiet       bool
	LockTimeout time.Duration
}

// StampOrchestrator orchestrates the entire stamp workflow.
type StampOrchestrator struct {
	describer repository.TagDescriber
	fsRepo    repository.FileSystemRepository
	log       *zap.Logger
}

// NewStampOrchestrator creates a new stamp orchestrator.
func NewStampOrchestrator(
	describer repository.TagDescriber,
	fsRepo repository.FileSystemRepository,
	log *zap.Logger,
) *StampOrchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &StampOrchestrator{
		describer: describer,
		fsRepo:    fsRepo,
		log:       log,
	}
}

// Execute runs the complete stamp workflow.
func (o *StampOrchestrator) Execute(ctx context.Context, cfg StampConfig) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultWorkflowTimeout)
	defer cancel()
	if err := ValidateTargetPath(cfg.File); err != nil {
		return fmt.Errorf("invalid target file: %w", err)
	}
	if err := ValidateMarker(cfg.Marker); err != nil {
		return fmt.Errorf("invalid marker: %w", err)
	}
	// Hold a lock on the target for the whole read-stamp-write cycle so
	// concurrent invocations cannot interleave
	release, err := o.lockTarget(ctx, cfg.File, cfg.LockTimeout)
	if err != nil {
		return err
	}
	defer release()
	// Step 1: Read the target file
	data, err := afero.ReadFile(o.fsRepo, cfg.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.File, err)
	}
	doc := domain.ParseDocument(data)
	// Step 2: Describe the repository
	desc, err := o.describeVersion(ctx)
	if err != nil {
		return err
	}
	version := desc.Normalized()
	if err := ValidateDescription(version); err != nil {
		return fmt.Errorf("unusable describe output: %w", err)
	}
	o.printDescription(desc, cfg.Quiet)
	if _, err := desc.Semver(); err != nil {
		o.log.Debug("stamped value is not a semantic version",
			zap.String("version", version), zap.Error(err))
	}
	// Step 3: Stamp the document
	replaced, err := o.stampDocument(ctx, doc, cfg.Marker, version)
	if err != nil {
		return err
	}
	if replaced == 0 {
		o.log.Warn("no version assignment found",
			zap.String("file", cfg.File), zap.String("marker", cfg.Marker))
	}
	if cfg.DryRun {
		o.log.Info("dry run complete, file left untouched",
			zap.String("file", cfg.File), zap.Int("lines_replaced", replaced))
		return nil
	}
	// Step 4: Write the file back in place
	if err := o.writeDocument(cfg.File, doc); err != nil {
		return err
	}
	o.log.Info("stamped version",
		zap.String("file", cfg.File),
		zap.String("describe", desc.Raw),
		zap.String("version", version),
		zap.Int("lines_replaced", replaced))
	return nil
}

// printDescription prints the raw description, and the normalized form
// when it differs. Quiet mode suppresses both.
func (o *StampOrchestrator) printDescription(desc *domain.Description, quiet bool) {
	if quiet {
		return
	}
	fmt.Println(desc.Raw)
	if desc.Changed() {
		fmt.Println(desc.Normalized())
	}
}

func (o *StampOrchestrator) describeVersion(ctx context.Context) (*domain.Description, error) {
	uc := &usecase.DescribeVersionUseCase{
		Describer: o.describer,
	}
	return uc.Execute(ctx)
}

func (o *StampOrchestrator) stampDocument(
	ctx context.Context,
	doc *domain.Document,
	marker, version string,
) (int, error) {
	uc := &usecase.StampDocumentUseCase{}
	return uc.Execute(ctx, doc, marker, version)
}

// lockTarget acquires an exclusive lock next to the target file and
// returns a release function.
func (o *StampOrchestrator) lockTarget(
	ctx context.Context,
	target string,
	timeout time.Duration,
) (func(), error) {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	lockFile := lockPath(target)
	lock := flock.New(lockFile)
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := retry.Do(lockCtx, retry.NewConstant(DefaultLockRetryDelay), func(_ context.Context) error {
		locked, err := lock.TryLock()
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(fmt.Errorf("lock held by another process"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", target, err)
	}
	release := func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			o.log.Warn("failed to unlock target file", zap.Error(unlockErr))
		}
		// Removing the lock file means two invocations racing this removal
		// can lock different inodes. Serialization is best effort; concurrent
		// runs carry no guarantee.
		if removeErr := o.fsRepo.Remove(lockFile); removeErr != nil && !os.IsNotExist(removeErr) {
			o.log.Warn("failed to remove lock file", zap.Error(removeErr))
		}
	}
	return release, nil
}

// lockPath returns the lock file path for a target file.
func lockPath(target string) string {
	dir, base := filepath.Split(target)
	return filepath.Join(dir, "."+base+".lock")
}

// writeDocument writes the document back atomically using a temp file,
// keeping the target's permissions when it already exists.
func (o *StampOrchestrator) writeDocument(target string, doc *domain.Document) error {
	mode := os.FileMode(FilePermissionsReadWrite)
	if info, err := o.fsRepo.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}
	tempFile := fmt.Sprintf("%s.%s.tmp", target, uuid.New().String())
	if err := afero.WriteFile(o.fsRepo, tempFile, doc.Bytes(), mode); err != nil {
		o.removeTemp(tempFile)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	// The create mode is narrowed by the process umask; restore the exact bits
	if err := o.fsRepo.Chmod(tempFile, mode); err != nil {
		o.removeTemp(tempFile)
		return fmt.Errorf("failed to set temp file permissions: %w", err)
	}
	if err := o.fsRepo.Rename(tempFile, target); err != nil {
		o.removeTemp(tempFile)
		return fmt.Errorf("failed to replace %s: %w", target, err)
	}
	return nil
}

// removeTemp deletes a temp file best effort after a failed write.
func (o *StampOrchestrator) removeTemp(tempFile string) {
	if err := o.fsRepo.Remove(tempFile); err != nil && !os.IsNotExist(err) {
		o.log.Warn("failed to remove temp file", zap.Error(err))
	}
}
