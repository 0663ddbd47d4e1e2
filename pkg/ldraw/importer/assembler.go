package importer

import (
	"context"
	"image/color"

	"github.com/mandelsoft/logging"

	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	"github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
	"github.com/mandelsoft/ldraw/pkg/ldraw/model"
	"github.com/mandelsoft/ldraw/pkg/ldraw/part"
	"github.com/mandelsoft/ldraw/pkg/ldraw/source"
	"github.com/mandelsoft/ldraw/pkg/utils"
)

// assembler holds the state of a single import.
type assembler struct {
	ctx      context.Context
	session  *Session
	log      logging.Logger
	src      source.Source
	report   *diag.Report
	registry *part.Registry
	resolver *source.Resolver
	progress *Progress
	recorder *recorder

	model   *model.Model
	placed  int
	colours map[int]*colors.Entry
}

// winding is the BFC state of a single file.
type winding struct {
	cw      bool
	invNext bool
}

// update handles BFC commands and reports whether the kind has
// been handled.
func (w *winding) update(kind command.Kind) bool {
	switch kind {
	case command.BFCCertifyCCW:
		w.cw = false
	case command.BFCCertifyCW:
		w.cw = true
	case command.BFCInvertNext:
		w.invNext = true
	default:
		return false
	}
	return true
}

// next consumes the invert-next flag.
func (w *winding) next() bool {
	inv := w.invNext
	w.invNext = false
	return inv
}

func (a *assembler) warn(src string, line int, msg string, args ...interface{}) {
	a.report.Reportf(src, line, msg, args...)
}

// forEachLine iterates over the lines of the main source and
// publishes the progress. Skipped lines are reported to the given
// reporters.
func (a *assembler) forEachLine(h source.LineHandler, reporters ...diag.Reporter) error {
	return source.ForEachLine(a.ctx, a.src, func(no int, line string) error {
		err := h(no, line)
		a.progress.consume()
		a.recorder.Line()
		return err
	}, reporters...)
}

func (a *assembler) classify(src string, no int, line string) command.Command {
	cmd := command.Parse(line)
	if cmd.Deprecated != "" {
		a.warn(src, no, "%s", cmd.Deprecated)
	}
	if cmd.Kind == command.Unknown {
		a.warn(src, no, "unknown line type: %s", cmd.Fields[0])
	}
	return cmd
}

// place adds a primitive as placed part to the main model.
func (a *assembler) place(p geometry.Primitive, step int) {
	a.model.AddPart(a.registry.Place(p, step))
	if p.Kind().IsGeometry() {
		a.placed++
	}
}

func (a *assembler) decode(src string, no int, kind command.Kind, line string, invert bool) geometry.Primitive {
	p, err := geometry.Decode(kind, line, invert)
	if err != nil {
		a.warn(src, no, "%s", err)
		return nil
	}
	return p
}

// colour parses an inline colour declaration. Inline colours may
// be used as edge reference by subsequent declarations.
func (a *assembler) colour(src string, no int, line string) *geometry.ColourCommand {
	e, err := colors.ParseColour(line, a.resolveEdge)
	if err != nil {
		if e == nil {
			a.warn(src, no, "unable to parse !COLOUR definition: %s", err)
			return nil
		}
		a.warn(src, no, "%s", err)
	}
	if a.colours == nil {
		a.colours = map[int]*colors.Entry{}
	}
	a.colours[e.ID] = e
	return &geometry.ColourCommand{Entry: e}
}

func (a *assembler) resolveEdge(id int) (color.NRGBA, bool) {
	if e, ok := a.colours[id]; ok {
		return e.Fill, true
	}
	return a.session.options.Colors.ResolveEdge(id)
}

// fileType parses a part type declaration. Unknown types are
// reported and yield part.Unknown.
func (a *assembler) fileType(src string, no int, line string) part.Type {
	typ, deprecated, err := part.ParseType(line)
	if err != nil {
		a.warn(src, no, "%s", err)
		return part.Unknown
	}
	if deprecated {
		a.warn(src, no, "deprecated part type declaration: %s", command.Description(line))
	}
	return typ
}

// resolve checks the target of a reference found in a file
// on disk. Library parts and known containers are accepted.
// Other targets are looked up in the search roots and expanded
// on first use. The stack contains the keys of the containers
// currently expanded.
func (a *assembler) resolve(src string, no int, ref *geometry.PartReference, stack []string) (bool, error) {
	if a.registry.IsKnownLibraryPart(ref.Target) {
		return true, nil
	}
	key := part.Key(ref.Target)
	if a.registry.Exists(key) {
		if cycle := utils.Cycle(key, stack...); cycle != nil {
			a.warn(src, no, "%s: %v", model.ErrCycle, cycle)
			return false, nil
		}
		return true, nil
	}
	sub, err := a.resolver.Lookup(ref.Target)
	if err != nil {
		a.warn(src, no, "unknown part: %s", ref.Target)
		return false, nil
	}
	if len(stack) >= a.session.options.MaxDepth {
		a.warn(src, no, "%s: %s", model.ErrDepthReached, ref.Target)
		return false, nil
	}
	c, _ := a.registry.GetOrCreate(ref.Target)
	ok, err := a.expand(c, sub, ref.Invert, stack)
	if err != nil || !ok {
		a.registry.Remove(c.Key)
		return false, err
	}
	return true, nil
}
