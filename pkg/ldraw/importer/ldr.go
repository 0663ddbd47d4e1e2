package importer

import (
	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	"github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
	"github.com/mandelsoft/ldraw/pkg/ldraw/model"
	"github.com/mandelsoft/ldraw/pkg/ldraw/part"
)

// importLDR assembles a single file model. Every geometry line
// becomes a placed part of the main model. References to files
// which are no library parts are expanded from disk.
func (a *assembler) importLDR() error {
	name := a.src.Name()
	a.model = model.New(name)

	var bfc winding
	firstLine := true
	step := part.Unassigned

	return a.forEachLine(func(no int, line string) error {
		cmd := a.classify(name, no, line)
		if bfc.update(cmd.Kind) || a.model.Apply(cmd.Kind, line) {
			return nil
		}
		switch cmd.Kind {
		case command.Step:
			step = a.model.AddStep(&geometry.StepMarker{Line: no})
		case command.FileType:
			a.fileType(name, no, line)
		case command.Colour:
			if c := a.colour(name, no, line); c != nil {
				a.place(c, step)
			}
		case command.MetaUnknown:
			if firstLine {
				a.model.Description = command.Description(line)
			}
			firstLine = false
		case command.Reference:
			firstLine = false
			p := a.decode(name, no, cmd.Kind, line, bfc.next())
			if p == nil {
				return nil
			}
			ok, err := a.resolve(name, no, p.(*geometry.PartReference), nil)
			if err != nil {
				return err
			}
			if ok {
				a.place(p, step)
			}
		case command.Triangle, command.Quad:
			firstLine = false
			if p := a.decode(name, no, cmd.Kind, line, bfc.cw != bfc.next()); p != nil {
				a.place(p, step)
			}
		case command.Line, command.AuxLine:
			firstLine = false
			bfc.next()
			if p := a.decode(name, no, cmd.Kind, line, false); p != nil {
				a.place(p, step)
			}
		}
		return nil
	}, a.report)
}
