// Package driver is the runtime of generated driver programs. It builds stages from a registry, runs them in
// order and reports their progress and timings.
package driver

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-simex/pkg/pipeline/calculator"
	"github.com/askiada/go-simex/pkg/pipeline/measure"
	"github.com/askiada/go-simex/pkg/pipeline/params"
)

// Default is the parameter file value asking for the path chosen by the driver.
const Default = params.Default

// LoadParams reads a stage parameter file.
var LoadParams = params.Load

// Builder creates stages by module name. *registry.Registry implements it.
type Builder interface {
	Build(name string, parameters calculator.Parameters, inputPath, outputPath string) (calculator.Calculator, error)
}

type Driver struct {
	project string
	builder Builder
	out     io.Writer
	measure measure.Measure
	now     func() time.Time
	start   time.Time
}

type Option func(*Driver)

// WithMeasure records stage timings in msr instead of a private measure.
func WithMeasure(msr measure.Measure) Option {
	return func(d *Driver) {
		d.measure = msr
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// New creates a driver writing its progress to out.
func New(project string, builder Builder, out io.Writer, opts ...Option) *Driver {
	d := &Driver{
		project: project,
		builder: builder,
		out:     out,
		measure: measure.NewDefaultMeasure(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.out == nil {
		d.out = io.Discard
	}
	d.start = d.now()

	return d
}

// Build creates the stage of module name. A path left to Default is replaced by the default of the stage.
func (d *Driver) Build(name string, parameters calculator.Parameters, inputPath, outputPath string) (calculator.Calculator, error) {
	if inputPath == Default {
		inputPath = ""
	}
	if outputPath == Default {
		outputPath = ""
	}

	calc, err := d.builder.Build(name, parameters, inputPath, outputPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to build stage %s", name)
	}

	return calc, nil
}

// Stage runs calc and records how long it took.
func (d *Driver) Stage(ctx context.Context, name string, calc calculator.Calculator) error {
	metric := d.measure.AddMetric(name)

	fmt.Fprintf(d.out, "Running %s ...\n", name)
	start := d.now()
	err := calc.Run(ctx)
	elapsed := d.now().Sub(start)
	metric.AddDuration(elapsed)
	if err != nil {
		metric.AddFailure()
		fmt.Fprintf(d.out, "Failed after %s\n", measure.Round(elapsed))

		return errors.Wrapf(err, "stage %s of %s", name, d.project)
	}
	fmt.Fprintf(d.out, "Done in %s\n", measure.Round(elapsed))

	return nil
}

// Finish prints the timing summary of all stages.
func (d *Driver) Finish() error {
	total := d.now().Sub(d.start)

	fmt.Fprintf(d.out, "Pipeline %s finished\n", d.project)
	metrics := d.measure.AllMetrics()
	for _, name := range d.measure.Names() {
		metric := metrics[name]
		metric.SetTotalDuration(total)
		fmt.Fprintf(d.out, "  %-20s runs=%d failures=%d avg=%s share=%.0f%% of %s\n", name,
			metric.Count(), metric.Failures(), metric.AVGDuration(), 100*metric.Share(), measure.Round(metric.GetTotalDuration()))
	}
	fmt.Fprintf(d.out, "Total %s\n", measure.Round(total))

	return nil
}
