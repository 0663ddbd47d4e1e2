package importer

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	"github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
	"github.com/mandelsoft/ldraw/pkg/ldraw/model"
	"github.com/mandelsoft/ldraw/pkg/ldraw/part"
)

// block describes a FILE block of a multi-part document found by
// the discovery pass.
type block struct {
	name string
	main bool
	// rejected blocks (duplicates, invalid names) are skipped by
	// the geometry pass.
	rejected  bool
	container *part.Container
	typed     bool
	custom    bool
}

func (b *block) header(m *model.Model) *part.Header {
	if b.main {
		return &m.Header
	}
	return &b.container.Header
}

// close finishes a sub-model block. Blocks with raw geometry and
// without type declaration are custom parts.
func (b *block) close() {
	if b != nil && b.container != nil && b.custom && !b.typed {
		b.container.Type = part.CustomPart
	}
}

// importMPD assembles a multi-part document in two passes over the
// source: the first one registers all blocks, the second one
// decodes the geometry.
func (a *assembler) importMPD() error {
	blocks, err := a.discover()
	if err != nil {
		return err
	}
	return a.assemble(blocks)
}

func (a *assembler) discover() ([]*block, error) {
	name := a.src.Name()
	seen := sets.New[string]()

	var blocks []*block
	var cur *block
	firstLine := false

	err := a.forEachLine(func(no int, line string) error {
		cmd := command.Parse(line)
		switch cmd.Kind {
		case command.MPDFile:
			cur.close()
			cur = a.open(name, no, line, len(blocks) == 0, seen)
			blocks = append(blocks, cur)
			firstLine = true
			return nil
		case command.MPDNoFile:
			if cur == nil {
				a.warn(name, no, "displaced NOFILE in MPD")
			}
			cur.close()
			cur = nil
			return nil
		case command.Empty, command.Comment:
			return nil
		}
		if cur == nil {
			a.warn(name, no, "invalid MPD file format: primitive or command outside FILE..NOFILE block: %s", line)
			return nil
		}
		if cur.rejected {
			return nil
		}
		h := cur.header(a.model)
		if h.Apply(cmd.Kind, line) {
			return nil
		}
		switch cmd.Kind {
		case command.FileType:
			typ := a.fileType(name, no, line)
			if !cur.main {
				cur.container.Type = typ
				cur.typed = true
			}
		case command.MetaUnknown:
			if firstLine {
				h.Description = command.Description(line)
			}
			firstLine = false
		case command.Line, command.Triangle, command.Quad, command.AuxLine:
			cur.custom = true
			firstLine = false
		case command.Reference:
			firstLine = false
		}
		return nil
	})
	cur.close()
	if err != nil {
		return nil, err
	}
	if a.model == nil {
		a.warn(name, 0, "no valid FILE block found in MPD")
		a.model = model.New(name)
	}
	return blocks, nil
}

// open registers a new FILE block. The first block is the main
// model, all others are sub-models. Duplicate names are rejected,
// the first registration is kept unchanged.
func (a *assembler) open(src string, no int, line string, first bool, seen sets.Set[string]) *block {
	b := &block{}
	file, err := command.MPDFileName(line)
	if err != nil {
		a.warn(src, no, "%s", err)
		if !first {
			b.rejected = true
			return b
		}
		file = src
	}
	b.name = file
	key := part.Key(file)
	if seen.Has(key) {
		a.warn(src, no, "duplicate sub-model name '%s' in MPD", file)
		b.rejected = true
		return b
	}
	seen.Insert(key)
	if first {
		b.main = true
		a.model = model.New(file)
		return b
	}
	b.container, _ = a.registry.GetOrCreate(file)
	b.container.Type = part.Submodel
	return b
}

func (a *assembler) assemble(blocks []*block) error {
	name := a.src.Name()

	var bfc winding
	var cur *block
	index := 0
	step := part.Unassigned

	add := func(p geometry.Primitive) {
		if cur.main {
			a.place(p, step)
		} else {
			cur.container.AddPrimitive(p)
		}
	}

	return a.forEachLine(func(no int, line string) error {
		cmd := command.Parse(line)
		switch cmd.Kind {
		case command.MPDFile:
			cur = nil
			if index < len(blocks) {
				cur = blocks[index]
			}
			index++
			bfc = winding{}
			return nil
		case command.MPDNoFile:
			cur = nil
			return nil
		}
		if cur == nil || cur.rejected {
			return nil
		}
		if cmd.Deprecated != "" {
			a.warn(name, no, "%s", cmd.Deprecated)
		}
		if bfc.update(cmd.Kind) {
			return nil
		}
		switch cmd.Kind {
		case command.Step:
			if cur.main {
				step = a.model.AddStep(&geometry.StepMarker{Line: no})
			}
		case command.Colour:
			if c := a.colour(name, no, line); c != nil {
				add(c)
			}
		case command.Reference:
			p := a.decode(name, no, cmd.Kind, line, bfc.next())
			if p == nil {
				return nil
			}
			ref := p.(*geometry.PartReference)
			if !a.registry.IsKnown(ref.Target) {
				a.warn(name, no, "unknown sub-model or part: %s", ref.Target)
				return nil
			}
			add(p)
		case command.Triangle, command.Quad:
			bfc.next()
			if p := a.decode(name, no, cmd.Kind, line, !bfc.cw); p != nil {
				add(p)
			}
		case command.Line, command.AuxLine:
			bfc.next()
			if p := a.decode(name, no, cmd.Kind, line, false); p != nil {
				add(p)
			}
		case command.Unknown:
			a.warn(name, no, "unknown line type: %s", cmd.Fields[0])
		}
		return nil
	}, a.report)
}
