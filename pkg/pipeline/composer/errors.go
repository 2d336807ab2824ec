package composer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidProjectName = errors.New("project name must start with a letter or digit and contain only letters, digits, '_', '-' and '.'")
	ErrBackupMismatch     = errors.New("backup content differs from the original")
)

// TemplateCopyError is returned when a template cannot be copied or rendered to its destination.
type TemplateCopyError struct {
	Source      string
	Destination string
	Err         error
}

func (e *TemplateCopyError) Error() string {
	return fmt.Sprintf("unable to copy %s to %s: %v", e.Source, e.Destination, e.Err)
}

func (e *TemplateCopyError) Unwrap() error {
	return e.Err
}

// ContractGapError is returned in strict mode when a stage expects data its predecessor does not provide.
type ContractGapError struct {
	Gaps []Coverage
}

func (e *ContractGapError) Error() string {
	parts := make([]string, len(e.Gaps))
	for i, gap := range e.Gaps {
		parts[i] = fmt.Sprintf("%s -> %s: %d missing", gap.From, gap.To, len(gap.Missing))
	}

	return "contract gaps: " + strings.Join(parts, ", ")
}

// EmptyPipelineWarning reports a generation without any module. The driver is still written.
type EmptyPipelineWarning struct {
	Project string
}

func (w *EmptyPipelineWarning) Error() string {
	return fmt.Sprintf("project %s has no modules, the driver runs no stage", w.Project)
}
