package part

import (
	"fmt"
	"strings"

	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	"github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
)

// Unassigned is the step index of a part not yet assigned to a step.
const Unassigned = -1

// Placed is a primitive instance placed in a model.
type Placed struct {
	ID        int
	Primitive geometry.Primitive
	Step      int
}

func (p *Placed) String() string {
	return fmt.Sprintf("%d: %s (step %d)", p.ID, geometry.Format(p.Primitive), p.Step)
}

// Reference returns the part reference of the placement, if any.
func (p *Placed) Reference() (*geometry.PartReference, bool) {
	r, ok := p.Primitive.(*geometry.PartReference)
	return r, ok
}

// Header is the descriptive metadata of a model or part file.
type Header struct {
	Description string
	Author      string
	PartName    string
	Category    string
	Keywords    []string
}

// Apply records the payload of a metadata line and reports whether
// the line kind has been handled. The author is taken from the
// first Author line only. Descriptions are not handled, they
// depend on the position of the line.
func (h *Header) Apply(kind command.Kind, line string) bool {
	switch kind {
	case command.Author:
		if h.Author == "" {
			h.Author = command.AuthorOf(line)
		}
	case command.Name:
		h.PartName = command.PartNameOf(line)
	case command.Category:
		h.Category = command.CategoryOf(line)
	case command.Keywords:
		for _, k := range strings.Split(command.KeywordsOf(line), ",") {
			if k = strings.TrimSpace(k); k != "" {
				h.Keywords = append(h.Keywords, k)
			}
		}
	default:
		return false
	}
	return true
}

// Container is a named sub-model or custom part. Its primitives
// are instanced by part references.
type Container struct {
	Key        string
	Name       string
	Type       Type
	Header
	Primitives []geometry.Primitive
}

func (c *Container) AddPrimitive(p geometry.Primitive) {
	c.Primitives = append(c.Primitives, p)
}

func (c *Container) String() string {
	return fmt.Sprintf("%s [%s, %d primitives]", c.Name, c.Type, len(c.Primitives))
}

// Key normalizes a part or sub-model identifier for lookups.
// LDraw identifiers are case-insensitive and may use backslashes
// as path separator.
func Key(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
}
