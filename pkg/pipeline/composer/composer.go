// Package composer generates the driver program of a simulation pipeline.
//
// Given an ordered list of module names, the composer copies the default parameter file of every module next to
// the driver (an existing file is never overwritten), renders one code block per module wiring the output of a
// stage to the input of the next one, and writes the driver. A driver from a previous generation is backed up
// before it is replaced.
package composer

import (
	"bytes"
	"embed"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-simex/pkg/pipeline/drawer"
	"github.com/askiada/go-simex/pkg/pipeline/params"
	"github.com/askiada/go-simex/pkg/pipeline/registry"
	"github.com/askiada/go-simex/pkg/pipeline/render"
)

const (
	DriverExt = ".go"
	BackupExt = ".bak"

	// OutputDir is the directory stage outputs default to.
	OutputDir = "output"

	driverTemplatePath      = "templates/driver.go.tmpl"
	stageTemplatePath       = "templates/stage.go.tmpl"
	predecessorTemplatePath = "templates/predecessor.go.tmpl"
)

//go:embed templates/*.tmpl
var templates embed.FS

var validProjectName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Resolver resolves module names. *registry.Registry implements it.
type Resolver interface {
	Resolve(name string) (registry.ModuleDescriptor, error)
}

// Composer generates stage parameter files and driver programs in a directory.
type Composer struct {
	resolver   Resolver
	engine     *render.Engine
	logger     *slog.Logger
	notices    io.Writer
	drawer     drawer.Drawer
	driverFS   fs.FS
	driverPath string
	dir        string
	catalog    string
	strict     bool

	stageTemplate       string
	predecessorTemplate string
}

// ParamFile is a stage parameter file. Created is false when a file from a previous run was kept.
type ParamFile struct {
	Stage   string
	Path    string
	Created bool
}

// Result describes the files written by GenerateDriver. Warnings holds non fatal conditions, such as
// *EmptyPipelineWarning. Failures holds the parameter files that could not be written, they do not stop the
// generation.
type Result struct {
	Driver     string
	Backup     string
	ParamFiles []ParamFile
	Coverage   []Coverage
	Warnings   []error
	Failures   []error
}

// New creates a composer.
func New(resolver Resolver, opts ...Option) (*Composer, error) {
	if resolver == nil {
		return nil, errors.New("resolver must be set")
	}

	stageTemplate, err := fs.ReadFile(templates, stageTemplatePath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read stage template")
	}
	predecessorTemplate, err := fs.ReadFile(templates, predecessorTemplatePath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read predecessor template")
	}

	c := &Composer{
		resolver:            resolver,
		engine:              render.New(),
		logger:              slog.Default(),
		notices:             io.Discard,
		driverFS:            templates,
		driverPath:          driverTemplatePath,
		dir:                 ".",
		stageTemplate:       string(stageTemplate),
		predecessorTemplate: string(predecessorTemplate),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// MaterializeStageParameters copies the parameter template of a module to <dir>/<name>_params.yaml.
// An existing file is kept untouched.
func (c *Composer) MaterializeStageParameters(name string) (ParamFile, error) {
	desc, err := c.resolver.Resolve(name)
	if err != nil {
		return ParamFile{}, err
	}

	return c.materialize(desc)
}

func (c *Composer) materialize(desc registry.ModuleDescriptor) (ParamFile, error) {
	dest := filepath.Join(c.dir, params.FileName(desc.Name))
	res := ParamFile{Stage: desc.Name, Path: dest}

	_, err := os.Stat(dest)
	if err == nil {
		c.logger.Debug("keeping existing parameter file", "stage", desc.Name, "file", dest)

		return res, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return res, &TemplateCopyError{Source: desc.TemplatePath, Destination: dest, Err: err}
	}

	data, err := fs.ReadFile(desc.TemplateFS, desc.TemplatePath)
	if err != nil {
		return res, &TemplateCopyError{Source: desc.TemplatePath, Destination: dest, Err: err}
	}

	err = writeNew(dest, data)
	if err != nil {
		return res, &TemplateCopyError{Source: desc.TemplatePath, Destination: dest, Err: err}
	}

	c.logger.Info("parameter file created", "stage", desc.Name, "file", dest)
	res.Created = true

	return res, nil
}

// writeNew writes a file that must not exist yet.
func writeNew(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // parameter files are meant to be edited
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		_ = file.Close()

		return err
	}

	return file.Close()
}

// StageBlock renders the driver code of module name. prev is the module running before it, empty for the first
// stage. Only a stage with a predecessor gets a default input path.
func (c *Composer) StageBlock(name, prev string) (string, error) {
	desc, err := c.resolver.Resolve(name)
	if err != nil {
		return "", err
	}

	return c.stageBlock(desc.Name, prev)
}

func (c *Composer) stageBlock(name, prev string) (string, error) {
	// The predecessor block references the stage name too, so it is rendered first and handed to the stage
	// block as plain text.
	var predecessor string
	if prev != "" {
		var err error
		predecessor, err = c.engine.Render("predecessor", c.predecessorTemplate, render.Fields{
			"Name":         name,
			"Previous":     prev,
			"InputDefault": OutputDir + "/" + prev,
		})
		if err != nil {
			return "", errors.Wrapf(err, "unable to render predecessor of %s", name)
		}
	}

	block, err := c.engine.Render("stage", c.stageTemplate, render.Fields{
		"Name":             name,
		"ParamsFile":       params.FileName(name),
		"OutputDefault":    OutputDir + "/" + name,
		"PredecessorBlock": predecessor,
	})
	if err != nil {
		return "", errors.Wrapf(err, "unable to render stage %s", name)
	}

	return block, nil
}

// ComposeStages renders the blocks of all modules in pipeline order.
func (c *Composer) ComposeStages(names []string) (string, error) {
	var sb strings.Builder
	for i, name := range names {
		block, err := c.StageBlock(name, previous(names, i))
		if err != nil {
			return "", err
		}
		sb.WriteString(block)
	}

	return sb.String(), nil
}

// Draw checks the contracts of adjacent modules and draws the pipeline with d. No file other than the drawing is
// written.
func (c *Composer) Draw(names []string, d drawer.Drawer) ([]Coverage, error) {
	descs := make([]registry.ModuleDescriptor, 0, len(names))
	for _, name := range names {
		desc, err := c.resolver.Resolve(name)
		if err != nil {
			return nil, err
		}
		descs = append(descs, desc)
	}

	coverage := checkCoverage(descs)
	err := draw(d, descs, coverage)
	if err != nil {
		return coverage, errors.Wrap(err, "unable to draw pipeline")
	}

	return coverage, nil
}

func previous(names []string, i int) string {
	if i == 0 {
		return ""
	}

	return names[i-1]
}

// ValidateProjectName checks that name can be used as the driver file name and inside the driver source.
func ValidateProjectName(name string) error {
	if !validProjectName.MatchString(name) {
		return errors.Wrapf(ErrInvalidProjectName, "%q", name)
	}

	return nil
}

// GenerateDriver writes the parameter files of all modules and the driver <dir>/<projectName>.go.
//
// An unknown module stops the generation, parameter files written before stay. A parameter file that cannot be
// written is reported in Result.Failures. An empty module list is not an error: the driver is written without
// stages and Result.Warnings holds an *EmptyPipelineWarning.
func (c *Composer) GenerateDriver(projectName string, names []string) (*Result, error) {
	err := ValidateProjectName(projectName)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With("project", projectName)
	driverPath := filepath.Join(c.dir, projectName+DriverExt)
	res := &Result{Driver: driverPath}

	driverTemplate, err := fs.ReadFile(c.driverFS, c.driverPath)
	if err != nil {
		logger.Error("unable to read driver template", "template", c.driverPath, "error", err)

		return res, &TemplateCopyError{Source: c.driverPath, Destination: driverPath, Err: err}
	}

	if len(names) == 0 {
		warning := &EmptyPipelineWarning{Project: projectName}
		logger.Warn(warning.Error())
		res.Warnings = append(res.Warnings, warning)
	}

	stages, descs, err := c.prepareStages(logger, res, names)
	if err != nil {
		return res, err
	}

	res.Coverage = checkCoverage(descs)
	if gapList := gaps(res.Coverage); len(gapList) > 0 {
		for _, gap := range gapList {
			logger.Warn("stage expects data its predecessor does not provide",
				"from", gap.From, "to", gap.To, "missing", gap.Missing)
		}
		if c.strict {
			return res, &ContractGapError{Gaps: gapList}
		}
	}

	err = c.assemble(logger, res, projectName, string(driverTemplate), stages)
	if err != nil {
		return res, err
	}

	if c.drawer != nil {
		err = draw(c.drawer, descs, res.Coverage)
		if err != nil {
			return res, errors.Wrap(err, "unable to draw pipeline")
		}
	}

	logger.Info("driver generated", "file", driverPath, "stages", len(names))

	return res, nil
}

func (c *Composer) prepareStages(logger *slog.Logger, res *Result, names []string) (string, []registry.ModuleDescriptor, error) {
	var sb strings.Builder
	descs := make([]registry.ModuleDescriptor, 0, len(names))

	for i, name := range names {
		desc, err := c.resolver.Resolve(name)
		if err != nil {
			logger.Error("unable to resolve module", "module", name, "error", err)

			return "", nil, err
		}

		paramFile, err := c.materialize(desc)
		if err != nil {
			logger.Error("unable to create parameter file", "module", name, "file", paramFile.Path, "error", err)
			res.Failures = append(res.Failures, err)
		} else {
			res.ParamFiles = append(res.ParamFiles, paramFile)
		}

		block, err := c.stageBlock(desc.Name, previous(names, i))
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(block)
		descs = append(descs, desc)
	}

	return sb.String(), descs, nil
}

func (c *Composer) assemble(logger *slog.Logger, res *Result, projectName, driverTemplate, stages string) error {
	rendered, err := c.engine.Render("driver", driverTemplate, render.Fields{
		"ProjectName": projectName,
		"Catalog":     c.catalog,
		"Stages":      stages,
	})
	if err != nil {
		logger.Error("unable to render driver template", "template", c.driverPath, "error", err)

		return &TemplateCopyError{Source: c.driverPath, Destination: res.Driver, Err: err}
	}

	backup, err := c.backup(res.Driver)
	if err != nil {
		logger.Error("unable to back up driver", "file", res.Driver, "error", err)

		return &TemplateCopyError{Source: res.Driver, Destination: backupPath(res.Driver), Err: err}
	}
	if backup != "" {
		res.Backup = backup
		logger.Info("driver backed up", "file", res.Driver, "backup", backup)
		_, _ = io.WriteString(c.notices, "Overwriting file "+res.Driver+", file "+backup+" created\n")
	}

	err = os.WriteFile(res.Driver, []byte(rendered), 0o644) //nolint:gosec // the driver is source code
	if err != nil {
		logger.Error("unable to write driver", "file", res.Driver, "error", err)

		return &TemplateCopyError{Source: c.driverPath, Destination: res.Driver, Err: err}
	}

	return nil
}

// backup copies an existing driver and checks the copy before the driver is replaced.
// It returns the backup path, or an empty string when there was nothing to back up.
func (c *Composer) backup(driverPath string) (string, error) {
	original, err := os.ReadFile(driverPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "unable to read %s", driverPath)
	}

	dest := backupPath(driverPath)
	err = os.WriteFile(dest, original, 0o644) //nolint:gosec // same mode as the driver
	if err != nil {
		return "", errors.Wrapf(err, "unable to write %s", dest)
	}

	written, err := os.ReadFile(dest)
	if err != nil {
		return "", errors.Wrapf(err, "unable to read back %s", dest)
	}
	if !bytes.Equal(original, written) {
		return "", errors.Wrap(ErrBackupMismatch, dest)
	}

	return dest, nil
}

func backupPath(driverPath string) string {
	return strings.TrimSuffix(driverPath, DriverExt) + BackupExt
}
