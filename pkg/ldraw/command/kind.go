package command

import (
	"fmt"
)

// Kind is the classification of a single LDraw line.
type Kind int

const (
	Empty Kind = iota
	Comment
	Colour
	BFCCertifyCW
	BFCCertifyCCW
	BFCInvertNext
	MPDFile
	MPDNoFile
	Category
	Keywords
	Name
	Author
	Step
	FileType
	Reference
	Line
	Triangle
	Quad
	AuxLine
	MetaUnknown
	Unknown
)

var names = map[Kind]string{
	Empty:         "empty",
	Comment:       "comment",
	Colour:        "colour",
	BFCCertifyCW:  "bfc-cw",
	BFCCertifyCCW: "bfc-ccw",
	BFCInvertNext: "bfc-invertnext",
	MPDFile:       "file",
	MPDNoFile:     "nofile",
	Category:      "category",
	Keywords:      "keywords",
	Name:          "name",
	Author:        "author",
	Step:          "step",
	FileType:      "filetype",
	Reference:     "reference",
	Line:          "line",
	Triangle:      "triangle",
	Quad:          "quad",
	AuxLine:       "auxline",
	MetaUnknown:   "meta",
	Unknown:       "unknown",
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsGeometry reports whether the kind is one of the
// numeric line types 1 to 5.
func (k Kind) IsGeometry() bool {
	switch k {
	case Reference, Line, Triangle, Quad, AuxLine:
		return true
	}
	return false
}

// IsPrimitive reports whether the kind describes raw geometry
// (line types 2 to 5), which marks a file as custom part.
func (k Kind) IsPrimitive() bool {
	return k.IsGeometry() && k != Reference
}
