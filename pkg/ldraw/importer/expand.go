package importer

import (
	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	"github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
	"github.com/mandelsoft/ldraw/pkg/ldraw/part"
	"github.com/mandelsoft/ldraw/pkg/ldraw/source"
)

// expand reads a sub file into its container. The file has its
// own BFC state, the invert flag of the referencing line is
// propagated to all nested references. The container is already
// registered, so recursive references find it on re-entry.
// If the file cannot be read completely, this is reported and false
// is returned. Only a cancellation is returned as error.
func (a *assembler) expand(c *part.Container, src source.Source, invert bool, stack []string) (bool, error) {
	name := src.Name()
	log := a.log.WithValues("subfile", name)
	log.Debug("expanding {{subfile}}", "subfile", name, "invert", invert)
	SubFilesExpanded.Inc()

	stack = append(stack, c.Key)
	c.Type = part.Submodel

	var bfc winding
	firstLine := true
	typed := false
	custom := false

	err := source.ForEachLine(a.ctx, src, func(no int, line string) error {
		cmd := a.classify(name, no, line)
		if bfc.update(cmd.Kind) || c.Apply(cmd.Kind, line) {
			return nil
		}
		switch cmd.Kind {
		case command.FileType:
			c.Type = a.fileType(name, no, line)
			typed = true
		case command.Colour:
			if cc := a.colour(name, no, line); cc != nil {
				c.AddPrimitive(cc)
			}
		case command.MetaUnknown:
			if firstLine {
				c.Description = command.Description(line)
			}
			firstLine = false
		case command.Reference:
			firstLine = false
			p := a.decode(name, no, cmd.Kind, line, invert != bfc.next())
			if p == nil {
				return nil
			}
			ok, err := a.resolve(name, no, p.(*geometry.PartReference), stack)
			if err != nil {
				return err
			}
			if ok {
				c.AddPrimitive(p)
			}
		case command.Triangle, command.Quad:
			firstLine = false
			custom = true
			bfc.next()
			if p := a.decode(name, no, cmd.Kind, line, !bfc.cw); p != nil {
				c.AddPrimitive(p)
			}
		case command.Line, command.AuxLine:
			firstLine = false
			custom = true
			bfc.next()
			if p := a.decode(name, no, cmd.Kind, line, false); p != nil {
				c.AddPrimitive(p)
			}
		}
		return nil
	}, a.report)
	if custom && !typed {
		c.Type = part.CustomPart
	}
	if err != nil {
		if a.ctx.Err() != nil {
			return false, err
		}
		a.warn(name, 0, "cannot read sub file: %s", err)
		return false, nil
	}
	return true, nil
}
