package geometry

import (
	"strconv"
	"strings"
)

// Format encodes a geometry primitive into its line representation.
// Non geometry primitives yield an empty string.
func Format(p Primitive) string {
	var b strings.Builder
	switch o := p.(type) {
	case *PartReference:
		b.WriteString("1 " + FormatColorID(o.Color))
		v := o.Transform.Values()
		writeFloats(&b, v[:]...)
		b.WriteString(" " + o.Target)
	case *Line:
		b.WriteString("2 " + FormatColorID(o.Color))
		writeVectors(&b, o.Points[:]...)
	case *Triangle:
		b.WriteString("3 " + FormatColorID(o.Color))
		writeVectors(&b, o.Points[:]...)
	case *Quad:
		b.WriteString("4 " + FormatColorID(o.Color))
		writeVectors(&b, o.Points[:]...)
	case *AuxLine:
		b.WriteString("5 " + FormatColorID(o.Color))
		writeVectors(&b, o.Points[:]...)
		writeVectors(&b, o.Controls[:]...)
	}
	return b.String()
}

func writeVectors(b *strings.Builder, pts ...Vector) {
	for _, p := range pts {
		writeFloats(b, p.X, p.Y, p.Z)
	}
}

func writeFloats(b *strings.Builder, v ...float64) {
	for _, f := range v {
		b.WriteString(" ")
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}
