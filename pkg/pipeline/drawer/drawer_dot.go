package drawer

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint
)

const maxRGB = 240

// DOTDrawer is a drawer that creates a DOT file with the pipeline graph.
// Links are coloured from blue, when the child gets all the data it expects, to red, when it gets none.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	dotFileName string
}

// NewDOTDrawer creates a new DOT drawer.
func NewDOTDrawer(dotFileName string) (*DOTDrawer, error) {
	drw := &DOTDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
	}

	for _, name := range []string{StartStep, EndStep} {
		err := drw.AddStep(name)
		if err != nil {
			return nil, err
		}
	}

	return drw, nil
}

// AddStep adds a step to the pipeline graph.
func (d *DOTDrawer) AddStep(name string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute("shape", "box"))
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	return nil
}

// AddLink adds a link between parent and child steps.
func (d *DOTDrawer) AddLink(parentName, childName string, missing, expected int) error {
	colour, err := coverageColour(missing, expected)
	if err != nil {
		return err
	}

	attributes := []func(*graph.EdgeProperties){
		graph.EdgeAttribute("color", colour),
		graph.EdgeWeight(missing),
	}
	if missing > 0 {
		attributes = append(attributes,
			graph.EdgeAttribute("label", fmt.Sprintf("missing %d/%d", missing, expected)),
			graph.EdgeAttribute("fontcolor", "red"),
		)
	}

	err = d.graph.AddEdge(parentName, childName, attributes...)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// Draw creates a DOT file with the pipeline graph.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = dot(d.graph, file, GraphAttribute("rankdir", "LR"))
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.dotFileName)
	}

	return file.Close()
}

func coverageColour(missing, expected int) (string, error) {
	fraction := 0.0
	if expected > 0 && missing > 0 {
		fraction = float64(missing) / float64(expected)
	}

	red := maxRGB * fraction
	blue := maxRGB - red

	rgb, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return rgb.ToHEX().String(), nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           any
	Target           any
	SourceAttributes map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot[K comparable, T any](g graph.Graph[K, T], wrt io.Writer, options ...func(*description)) error {
	desc, err := generateDOT(g, options...)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

// GraphAttribute is a functional option for the [DOT] method.
func GraphAttribute(key, value string) func(*description) {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

func generateDOT[K comparable, T any](gra graph.Graph[K, T], options ...func(*description)) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	order, err := graph.StableTopologicalSort(gra, func(a, b K) bool {
		return fmt.Sprint(a) < fmt.Sprint(b)
	})
	if err != nil {
		return desc, errors.Wrap(err, "unable to sort vertices")
	}

	for _, vertex := range order {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceProperties.Attributes,
		})

		for adjacency, edge := range adjacencyMap[vertex] {
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
