package geometry

import (
	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
)

// Primitive is the decoded content of a single model line.
// The set of implementations is closed.
type Primitive interface {
	Kind() command.Kind
	ColorID() int

	primitive()
}

// PartReference places a part or sub-model (line type 1).
type PartReference struct {
	Color     int
	Transform Transform
	Target    string
	Invert    bool
}

// Line is a two point edge line (line type 2).
type Line struct {
	Color  int
	Points [2]Vector
}

// Triangle is a filled triangle (line type 3).
type Triangle struct {
	Color  int
	Points [3]Vector
	Invert bool
}

// Quad is a filled quadrilateral (line type 4).
type Quad struct {
	Color  int
	Points [4]Vector
	Invert bool
}

// AuxLine is an optional (conditional) line (line type 5).
// It is never rendered by itself, the control points decide
// about its visibility.
type AuxLine struct {
	Color    int
	Points   [2]Vector
	Controls [2]Vector
}

// ColourCommand is an inline colour declaration found in a model.
type ColourCommand struct {
	Entry *colors.Entry
}

// StepMarker marks the end of an assembly step.
type StepMarker struct {
	Index int
	Line  int
}

var (
	_ Primitive = (*PartReference)(nil)
	_ Primitive = (*Line)(nil)
	_ Primitive = (*Triangle)(nil)
	_ Primitive = (*Quad)(nil)
	_ Primitive = (*AuxLine)(nil)
	_ Primitive = (*ColourCommand)(nil)
	_ Primitive = (*StepMarker)(nil)
)

func (p *PartReference) Kind() command.Kind { return command.Reference }
func (p *PartReference) ColorID() int       { return p.Color }
func (p *PartReference) primitive()         {}

// WithInvert returns a copy with the given inversion flag.
func (p *PartReference) WithInvert(invert bool) *PartReference {
	c := *p
	c.Invert = invert
	return &c
}

func (p *Line) Kind() command.Kind { return command.Line }
func (p *Line) ColorID() int       { return p.Color }
func (p *Line) primitive()         {}

func (p *Triangle) Kind() command.Kind { return command.Triangle }
func (p *Triangle) ColorID() int       { return p.Color }
func (p *Triangle) primitive()         {}

func (p *Quad) Kind() command.Kind { return command.Quad }
func (p *Quad) ColorID() int       { return p.Color }
func (p *Quad) primitive()         {}

func (p *AuxLine) Kind() command.Kind { return command.AuxLine }
func (p *AuxLine) ColorID() int       { return p.Color }
func (p *AuxLine) primitive()         {}

func (p *ColourCommand) Kind() command.Kind { return command.Colour }
func (p *ColourCommand) ColorID() int       { return p.Entry.ID }
func (p *ColourCommand) primitive()         {}

func (p *StepMarker) Kind() command.Kind { return command.Step }
func (p *StepMarker) ColorID() int       { return colors.Current }
func (p *StepMarker) primitive()         {}

// Points returns the vertices of a geometry primitive.
func Points(p Primitive) []Vector {
	switch o := p.(type) {
	case *Line:
		return o.Points[:]
	case *Triangle:
		return o.Points[:]
	case *Quad:
		return o.Points[:]
	case *AuxLine:
		return o.Points[:]
	case *PartReference:
		return []Vector{o.Transform.T}
	}
	return nil
}

// Transformed returns a copy of the primitive with all points and
// transforms mapped by t. Non geometric primitives are returned
// unchanged.
func Transformed(p Primitive, t Transform) Primitive {
	switch o := p.(type) {
	case *PartReference:
		c := *o
		c.Transform = t.Compose(o.Transform)
		return &c
	case *Line:
		c := *o
		mapPoints(t, c.Points[:])
		return &c
	case *Triangle:
		c := *o
		mapPoints(t, c.Points[:])
		return &c
	case *Quad:
		c := *o
		mapPoints(t, c.Points[:])
		return &c
	case *AuxLine:
		c := *o
		mapPoints(t, c.Points[:])
		mapPoints(t, c.Controls[:])
		return &c
	}
	return p
}

func mapPoints(t Transform, pts []Vector) {
	for i := range pts {
		pts[i] = t.Apply(pts[i])
	}
}
