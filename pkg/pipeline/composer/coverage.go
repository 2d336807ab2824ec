package composer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/askiada/go-simex/pkg/pipeline/drawer"
	"github.com/askiada/go-simex/pkg/pipeline/model"
	"github.com/askiada/go-simex/pkg/pipeline/registry"
)

// Coverage describes how much of the expected data of a stage its predecessor provides.
type Coverage struct {
	From     string
	To       string
	Expected int
	Missing  []model.DataPath
}

// Covered reports whether the predecessor provides everything the stage expects.
func (c Coverage) Covered() bool {
	return len(c.Missing) == 0
}

// stageLabels returns a unique label per position. Repeated modules get their occurrence appended.
func stageLabels(descs []registry.ModuleDescriptor) []string {
	seen := make(map[string]int, len(descs))
	labels := make([]string, len(descs))
	for i, desc := range descs {
		seen[desc.Name]++
		labels[i] = desc.Name
		if n := seen[desc.Name]; n > 1 {
			labels[i] = fmt.Sprintf("%s (%d)", desc.Name, n)
		}
	}

	return labels
}

func checkCoverage(descs []registry.ModuleDescriptor) []Coverage {
	labels := stageLabels(descs)
	res := make([]Coverage, 0, len(descs))
	for i := 1; i < len(descs); i++ {
		res = append(res, Coverage{
			From:     labels[i-1],
			To:       labels[i],
			Expected: len(descs[i].Contract.ExpectedData()),
			Missing:  descs[i].Contract.Missing(descs[i-1].Contract),
		})
	}

	return res
}

func gaps(coverage []Coverage) []Coverage {
	var res []Coverage
	for _, cov := range coverage {
		if !cov.Covered() {
			res = append(res, cov)
		}
	}

	return res
}

func draw(d drawer.Drawer, descs []registry.ModuleDescriptor, coverage []Coverage) error {
	labels := stageLabels(descs)
	for _, label := range labels {
		err := d.AddStep(label)
		if err != nil {
			return errors.Wrapf(err, "unable to add step %s", label)
		}
	}

	if len(labels) == 0 {
		err := d.AddLink(drawer.StartStep, drawer.EndStep, 0, 0)
		if err != nil {
			return errors.Wrap(err, "unable to link start step to end step")
		}

		return d.Draw()
	}

	err := d.AddLink(drawer.StartStep, labels[0], 0, 0)
	if err != nil {
		return errors.Wrap(err, "unable to link start step")
	}
	for _, cov := range coverage {
		err := d.AddLink(cov.From, cov.To, len(cov.Missing), cov.Expected)
		if err != nil {
			return errors.Wrapf(err, "unable to link %s to %s", cov.From, cov.To)
		}
	}
	err = d.AddLink(labels[len(labels)-1], drawer.EndStep, 0, 0)
	if err != nil {
		return errors.Wrap(err, "unable to link end step")
	}

	return d.Draw()
}
