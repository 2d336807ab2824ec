// Package drawer draws the data flow of a pipeline.
package drawer

const (
	// StartStep is the vertex every pipeline starts from.
	StartStep = "start"
	// EndStep is the vertex every pipeline ends on.
	EndStep = "end"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStep adds a step to the pipeline drawer.
	AddStep(stepName string) error
	// AddLink adds a link between parent and child steps. missing is the number of expected paths of the child
	// its parent does not provide, out of expected.
	AddLink(parentStepName, childStepName string, missing, expected int) error
	// Draw creates a file with the pipeline graph.
	Draw() error
}
