package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	"github.com/mandelsoft/ldraw/pkg/ldraw/library"
	"github.com/mandelsoft/ldraw/pkg/ldraw/model"
	"github.com/mandelsoft/ldraw/pkg/ldraw/part"
	"github.com/mandelsoft/ldraw/pkg/ldraw/source"
	"github.com/mandelsoft/ldraw/pkg/utils"
)

var ErrCancelled = errors.New("import cancelled")

// Options configures an import session.
type Options struct {
	// Colors is the shared color table. An empty table is used if
	// not set.
	Colors *colors.Table
	// Library is the index of standard parts.
	Library *library.Library
	// FileSystem is used to resolve sub files, default is the OS
	// filesystem.
	FileSystem vfs.FileSystem
	// Additional is an optional additional search root for sub
	// files not found beside the main model.
	Additional string
	// MaxDepth limits the nesting of sub file expansion.
	MaxDepth int
}

// Session owns the state shared by subsequent imports: the color
// table and the part registry. The registry is rebuilt by every
// import, imports of one session are serialized.
type Session struct {
	lock     sync.Mutex
	id       string
	options  Options
	registry *part.Registry
	log      logging.Logger
}

func NewSession(opts Options) *Session {
	if opts.Colors == nil {
		opts.Colors = colors.NewTable()
	}
	if opts.Library == nil {
		opts.Library = library.Empty()
	}
	opts.FileSystem = utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), opts.FileSystem)
	opts.MaxDepth = utils.OptionalDefaulted(model.DefaultMaxDepth, opts.MaxDepth)

	id := uuid.New().String()
	return &Session{
		id:       id,
		options:  opts,
		registry: part.NewRegistry(opts.Library),
		log:      log.WithValues("session", id),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Colors() *colors.Table {
	return s.options.Colors
}

// Registry returns the part registry of the last import.
func (s *Session) Registry() *part.Registry {
	return s.registry
}

// Result is the outcome of a successful import.
type Result struct {
	Model  *model.Model
	Report *diag.Report
	// MPD is set if the input has been a multi-part document.
	MPD bool
	// Placed is the number of placed geometry parts.
	Placed int
}

// Warnings reports whether the import completed with diagnostics.
func (r *Result) Warnings() bool {
	return r.Report.HasWarnings()
}

// Import reads a model. Line, structure and reference problems are
// collected in the report of the result. An error is returned only
// if the top level source cannot be read or the context is
// cancelled.
func (s *Session) Import(ctx context.Context, src source.Source) (*Result, error) {
	return s.run(ctx, src, &Progress{})
}

func (s *Session) run(ctx context.Context, src source.Source, progress *Progress) (result *Result, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	rec := newRecorder()
	report := diag.NewReport()
	placed := 0
	defer func() {
		progress.finish()
		rec.Finish(placed, report.Len(), err)
	}()

	s.registry.Clear()
	log := s.log.WithValues("source", src.Name())
	report.OnReport(func(d diag.Diagnostic) {
		log.Debug("{{diagnostic}}", "diagnostic", d.String())
	})

	lines, mpd, err := prescan(ctx, src)
	if err != nil {
		return nil, s.failed(log, src, err)
	}
	passes := 1
	if mpd {
		passes = 2
		rec.format = FormatMPD
	}
	progress.setTotal(lines * passes)
	log.Info("starting import", "lines", lines, "mpd", mpd)

	a := &assembler{
		ctx:      ctx,
		session:  s,
		log:      log,
		src:      src,
		report:   report,
		registry: s.registry,
		resolver: source.NewResolver(s.options.FileSystem, src.Dir(), s.options.Additional),
		progress: progress,
		recorder: rec,
	}
	if mpd {
		err = a.importMPD()
	} else {
		err = a.importLDR()
	}
	if err != nil {
		return nil, s.failed(log, src, err)
	}
	a.model.Finalize()
	placed = a.placed

	log.Info("import done", "parts", a.model.PartCount(), "steps", a.model.StepCount(), "diagnostics", report.Len())
	return &Result{Model: a.model, Report: report, MPD: mpd, Placed: placed}, nil
}

func (s *Session) failed(log logging.Logger, src source.Source, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %s: %w", ErrCancelled, src.Name(), err)
	} else {
		err = fmt.Errorf("cannot import %s: %w", src.Name(), err)
	}
	log.Error("import failed", "error", err)
	return err
}

// prescan counts the lines of the source and detects multi-part
// documents.
func prescan(ctx context.Context, src source.Source) (int, bool, error) {
	n := 0
	mpd := false
	err := source.ForEachLine(ctx, src, func(_ int, line string) error {
		n++
		if !mpd && command.Classify(line) == command.MPDFile {
			mpd = true
		}
		return nil
	})
	return n, mpd, err
}
