package registry

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidName       = errors.New("module name must start with a letter and contain only letters, digits and underscores")
	ErrModuleExists      = errors.New("module already registered")
	ErrFactoryMustBeSet  = errors.New("factory must be set")
	ErrTemplateMustBeSet = errors.New("parameter template must be set")
)

// UnknownModuleError is returned when a name does not match any registered module.
type UnknownModuleError struct {
	Name  string
	Known []string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown module %q (known modules: %s)", e.Name, strings.Join(e.Known, ", "))
}
