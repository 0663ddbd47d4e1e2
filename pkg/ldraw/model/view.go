package model

import (
	"errors"
	"fmt"

	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	"github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
	"github.com/mandelsoft/ldraw/pkg/ldraw/part"
	"github.com/mandelsoft/ldraw/pkg/utils"
)

// DefaultMaxDepth limits the nesting of container instantiation.
const DefaultMaxDepth = 32

var (
	ErrNotPlaced    = errors.New("no placed part")
	ErrNoSubmodel   = errors.New("no sub-model reference")
	ErrCycle        = errors.New("reference cycle")
	ErrDepthReached = errors.New("maximum nesting depth reached")
)

// Placement is the resolved view of a placed part.
type Placement struct {
	ID        int
	Primitive geometry.Primitive
	Transform geometry.Transform
	Color     *colors.Entry
	Step      int
}

// Placements returns the placed geometry parts with resolved
// transform and color. Colour declarations are skipped.
func (m *Model) Placements(table *colors.Table, reporter diag.Reporter) []Placement {
	var r []Placement
	for _, p := range m.Parts() {
		if !p.Primitive.Kind().IsGeometry() {
			continue
		}
		t := geometry.Identity()
		if ref, ok := p.Reference(); ok {
			t = ref.Transform
		}
		r = append(r, Placement{
			ID:        p.ID,
			Primitive: p.Primitive,
			Transform: t,
			Color:     m.Color(p.Primitive.ColorID(), table, diag.At(reporter, m.FileName, 0)),
			Step:      p.Step,
		})
	}
	return r
}

// Facet is a world space primitive produced by flattening the
// container hierarchy. Library part references are leaves.
type Facet struct {
	// ID is the global id of the placed part the facet stems from.
	ID        int
	Primitive geometry.Primitive
	Color     *colors.Entry
	// Edge selects the edge color of Color (inherited color 24).
	Edge bool
	// Reversed is set if the winding must be swapped, either by
	// inversion or by a mirroring transform.
	Reversed bool
	Step     int
}

type flattener struct {
	model    *Model
	registry *part.Registry
	table    *colors.Table
	reporter diag.Reporter
	maxDepth int
	result   []Facet
}

// Flatten resolves all placed parts recursively into world space
// facets. Reference cycles and excessive nesting are reported and
// cut off.
func (m *Model) Flatten(reg *part.Registry, table *colors.Table, reporter diag.Reporter, maxDepth ...int) []Facet {
	f := &flattener{
		model:    m,
		registry: reg,
		table:    table,
		reporter: utils.OptionalDefaulted(diag.Discard, reporter),
		maxDepth: utils.OptionalDefaulted(DefaultMaxDepth, maxDepth...),
	}
	for _, p := range m.Parts() {
		if !p.Primitive.Kind().IsGeometry() {
			continue
		}
		color := m.Color(p.Primitive.ColorID(), table, diag.At(f.reporter, m.FileName, 0))
		f.add(p, p.Primitive, geometry.Identity(), color, false, nil)
	}
	return f.result
}

func (f *flattener) add(p *part.Placed, prim geometry.Primitive, t geometry.Transform, color *colors.Entry, invert bool, stack []string) {
	ref, ok := prim.(*geometry.PartReference)
	if ok {
		c := f.registry.Get(ref.Target)
		if c != nil && !f.registry.IsKnownLibraryPart(ref.Target) {
			f.expand(p, ref, c, t, color, invert, stack)
			return
		}
	}
	prim = geometry.Transformed(prim, t)
	reversed := t.Mirrors()
	switch o := prim.(type) {
	case *geometry.Triangle:
		reversed = reversed != (o.Invert != invert)
	case *geometry.Quad:
		reversed = reversed != (o.Invert != invert)
	case *geometry.PartReference:
		reversed = reversed != (o.Invert != invert)
	}
	f.result = append(f.result, Facet{
		ID:        p.ID,
		Primitive: prim,
		Color:     color,
		Edge:      prim.ColorID() == colors.Complement && len(stack) > 0,
		Reversed:  reversed,
		Step:      p.Step,
	})
}

func (f *flattener) expand(p *part.Placed, ref *geometry.PartReference, c *part.Container, t geometry.Transform, color *colors.Entry, invert bool, stack []string) {
	if cycle := utils.Cycle(c.Key, stack...); cycle != nil {
		f.reporter.Report(f.model.FileName, 0, fmt.Sprintf("%s: %v", ErrCycle, cycle))
		return
	}
	if len(stack) >= f.maxDepth {
		f.reporter.Report(f.model.FileName, 0, fmt.Sprintf("%s: %s", ErrDepthReached, c.Name))
		return
	}
	stack = append(stack, c.Key)
	t = t.Compose(ref.Transform)
	invert = invert != ref.Invert
	for _, child := range c.Primitives {
		if !child.Kind().IsGeometry() {
			continue
		}
		f.add(p, child, t, f.inherit(child.ColorID(), color), invert, stack)
	}
}

func (f *flattener) inherit(id int, parent *colors.Entry) *colors.Entry {
	switch id {
	case colors.Current, colors.Complement:
		return parent
	}
	return f.model.Color(id, f.table, diag.At(f.reporter, f.model.FileName, 0))
}

// ReplaceParts replaces a placed sub-model instance by the
// primitives of its container. The primitives are transformed by
// the instance transform, inherit its color and get new global
// ids. It returns the number of added parts.
func (m *Model) ReplaceParts(reg *part.Registry, id int) (int, error) {
	p := m.parts[id]
	if p == nil {
		return 0, fmt.Errorf("%w: %d", ErrNotPlaced, id)
	}
	ref, ok := p.Reference()
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNoSubmodel, id)
	}
	c := reg.Get(ref.Target)
	if c == nil || c.Type != part.Submodel {
		return 0, fmt.Errorf("%w: %s", ErrNoSubmodel, ref.Target)
	}
	delete(m.parts, id)
	n := 0
	for _, child := range c.Primitives {
		if child.Kind() == command.Step {
			continue
		}
		prim := geometry.Transformed(child, ref.Transform)
		prim = recolor(prim, ref.Color)
		if r, ok := prim.(*geometry.PartReference); ok && ref.Invert {
			prim = r.WithInvert(!r.Invert)
		}
		m.AddPart(reg.Place(prim, p.Step))
		n++
	}
	return n, nil
}

func recolor(p geometry.Primitive, color int) geometry.Primitive {
	if p.ColorID() != colors.Current {
		return p
	}
	switch o := p.(type) {
	case *geometry.PartReference:
		c := *o
		c.Color = color
		return &c
	case *geometry.Line:
		c := *o
		c.Color = color
		return &c
	case *geometry.Triangle:
		c := *o
		c.Color = color
		return &c
	case *geometry.Quad:
		c := *o
		c.Color = color
		return &c
	case *geometry.AuxLine:
		c := *o
		c.Color = color
		return &c
	}
	return p
}

// Summary is a condensed description of a model.
type Summary struct {
	Name        string         `json:"name"`
	FileName    string         `json:"fileName"`
	Description string         `json:"description,omitempty"`
	Author      string         `json:"author,omitempty"`
	Parts       int            `json:"parts"`
	Steps       int            `json:"steps"`
	Kinds       map[string]int `json:"kinds,omitempty"`
}

func (m *Model) Summary() Summary {
	s := Summary{
		Name:        m.Name,
		FileName:    m.FileName,
		Description: m.Description,
		Author:      m.Author,
		Parts:       len(m.parts),
		Steps:       len(m.order),
		Kinds:       map[string]int{},
	}
	for _, p := range m.parts {
		s.Kinds[p.Primitive.Kind().String()]++
	}
	return s
}

// Digest returns a stable hash of the placed geometry.
func (m *Model) Digest() string {
	lines := utils.TransformSlice(m.Parts(), func(p *part.Placed) string {
		return fmt.Sprintf("%d %s", p.Step, geometry.Format(p.Primitive))
	})
	return utils.HashData(lines)
}
