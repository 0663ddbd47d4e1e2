package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	"github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
	"github.com/mandelsoft/ldraw/pkg/ldraw/part"
	"github.com/mandelsoft/ldraw/pkg/utils"
)

// Step is an assembly step boundary of a model.
type Step struct {
	Index  int
	Marker *geometry.StepMarker
}

// Model is the result of an import: the placed parts of the main
// model, ordered by global id, and its assembly steps.
type Model struct {
	Name     string
	FileName string
	part.Header

	parts   map[int]*part.Placed
	steps   map[int]*Step
	order   []int
	colours map[int]*colors.Entry
}

func New(fileName string) *Model {
	return &Model{
		Name:     strings.ToLower(fileName),
		FileName: fileName,
		parts:    map[int]*part.Placed{},
		steps:    map[int]*Step{},
		colours:  map[int]*colors.Entry{},
	}
}

func (m *Model) String() string {
	return fmt.Sprintf("Model [name=%s, filename=%s, parts=%d, steps=%d]", m.Name, m.FileName, len(m.parts), len(m.order))
}

// AddPart adds a placed part. Inline colour declarations are
// remembered as local colors of the model.
func (m *Model) AddPart(p *part.Placed) {
	if p == nil {
		return
	}
	m.parts[p.ID] = p
	if c, ok := p.Primitive.(*geometry.ColourCommand); ok {
		m.colours[c.Entry.ID] = c.Entry
	}
}

func (m *Model) RemovePart(id int) *part.Placed {
	p := m.parts[id]
	delete(m.parts, id)
	return p
}

// AddStep appends a step and returns its 1-based index.
func (m *Model) AddStep(marker *geometry.StepMarker) int {
	idx := len(m.order) + 1
	if marker == nil {
		marker = &geometry.StepMarker{}
	}
	marker.Index = idx
	m.steps[idx] = &Step{Index: idx, Marker: marker}
	m.order = append(m.order, idx)
	return idx
}

func (m *Model) Part(id int) *part.Placed {
	return m.parts[id]
}

// Parts returns the placed parts in global id order.
func (m *Model) Parts() []*part.Placed {
	return utils.OrderedMapElements(m.parts)
}

func (m *Model) PartCount() int {
	return len(m.parts)
}

func (m *Model) StepCount() int {
	return len(m.order)
}

// Step returns the step with the given 1-based index or nil.
func (m *Model) Step(index int) *Step {
	return m.steps[index]
}

// Steps returns the steps in insertion order.
func (m *Model) Steps() []*Step {
	return utils.TransformSlice(m.order, func(i int) *Step { return m.steps[i] })
}

// PartsOfStep returns the parts of a step. With cumulative set
// the parts of all preceding steps are included.
func (m *Model) PartsOfStep(index int, cumulative bool) []*part.Placed {
	var r []*part.Placed
	for _, p := range m.Parts() {
		if p.Step == index || (cumulative && p.Step != part.Unassigned && p.Step <= index) {
			r = append(r, p)
		}
	}
	return r
}

// Finalize enforces the step invariant: a model without steps gets
// a single implicit step and all unassigned parts are assigned to
// the first step.
func (m *Model) Finalize() {
	if len(m.order) == 0 {
		m.AddStep(nil)
	}
	first := m.order[0]
	for _, p := range m.parts {
		if p.Step == part.Unassigned {
			p.Step = first
		}
	}
}

// Color resolves a color id preferring colors declared inline
// in the model over the shared table.
func (m *Model) Color(id int, table *colors.Table, sites ...diag.Site) *colors.Entry {
	if e, ok := m.colours[id]; ok {
		return e
	}
	return table.Get(id, sites...)
}

// LocalColors returns the inline declared colors.
func (m *Model) LocalColors() []*colors.Entry {
	return utils.OrderedMapElements(m.colours)
}

// List writes a human readable part (and optionally step) listing.
func (m *Model) List(w io.Writer, steps bool) {
	fmt.Fprintf(w, "LDraw Models: %d --------------\n", len(m.parts))
	for _, p := range m.Parts() {
		fmt.Fprintln(w, p.String())
	}
	if steps {
		fmt.Fprintf(w, "LDraw Steps: %d --------------\n", len(m.order))
		for _, s := range m.Steps() {
			fmt.Fprintf(w, "step %d (line %d)\n", s.Index, s.Marker.Line)
		}
	}
}
