package composer

import (
	"io"
	"io/fs"
	"log/slog"

	"github.com/askiada/go-simex/pkg/pipeline/drawer"
)

// Option configures a Composer.
type Option func(c *Composer)

// WithDir sets the directory parameter files and the driver are written to. It defaults to ".".
func WithDir(dir string) Option {
	return func(c *Composer) {
		c.dir = dir
	}
}

// WithLogger sets the logger. It defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// WithNotices sets where user facing notices, such as driver backups, are printed.
func WithNotices(w io.Writer) Option {
	return func(c *Composer) {
		c.notices = w
	}
}

// WithDriverTemplate replaces the embedded driver template.
func WithDriverTemplate(templates fs.FS, path string) Option {
	return func(c *Composer) {
		c.driverFS = templates
		c.driverPath = path
	}
}

// WithCatalog sets the module catalog the generated driver opens.
func WithCatalog(path string) Option {
	return func(c *Composer) {
		c.catalog = path
	}
}

// WithStrictContracts turns contract gaps between adjacent stages into errors.
func WithStrictContracts() Option {
	return func(c *Composer) {
		c.strict = true
	}
}

// WithDrawer draws the data flow of every generated pipeline.
func WithDrawer(d drawer.Drawer) Option {
	return func(c *Composer) {
		c.drawer = d
	}
}
