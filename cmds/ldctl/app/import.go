package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/ldraw/pkg/ctxutil"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	"github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
	"github.com/mandelsoft/ldraw/pkg/ldraw/importer"
	"github.com/mandelsoft/ldraw/pkg/ldraw/model"
	"github.com/mandelsoft/ldraw/pkg/ldraw/source"
)

// progressInterval is the period progress is logged with during
// an import.
var progressInterval = time.Second

type Import struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
	flatten  bool
	list     bool
}

// ImportOutput is the machine readable result of an import.
type ImportOutput struct {
	model.Summary
	Format      string            `json:"format"`
	Digest      string            `json:"digest"`
	Placed      int               `json:"placed"`
	Facets      int               `json:"facets,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`
}

func NewImport(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file> <options>",
		Short: "import an LDR or MPD model",
		Args:  cobra.ExactArgs(1),
	}

	c := &Import{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format (json or yaml)")
	flags.BoolVarP(&c.flatten, "flatten", "f", false, "resolve sub-models into world space geometry")
	flags.BoolVarP(&c.list, "list", "", false, "list parts and steps in line format")
	return cmd
}

func (c *Import) Run(args []string) error {
	format, err := outputFormat(c.output)
	if err != nil {
		return err
	}

	report := diag.NewReport()
	session, err := c.mainopts.Session(report)
	if err != nil {
		return err
	}

	ctx := ctxutil.CancelContext(context.Background())
	if c.mainopts.timeout > 0 {
		ctx = ctxutil.TimeoutContext(context.Background(), c.mainopts.timeout)
	}
	defer ctxutil.Cancel(ctx)

	src := source.File(args[0], c.mainopts.fs)
	result, err := c.wait(ctx, session.Start(ctx, src), src)
	if err != nil {
		return err
	}

	m := result.Model
	table := session.Colors()
	diagnostics := append(report.Entries(), result.Report.Entries()...)

	var facets []model.Facet
	if c.flatten {
		facets = m.Flatten(session.Registry(), table, result.Report)
		diagnostics = append(report.Entries(), result.Report.Entries()...)
	}

	out := c.cmd.OutOrStdout()
	if format != OutputTable {
		o := &ImportOutput{
			Summary:     m.Summary(),
			Format:      importer.FormatLDR,
			Digest:      m.Digest(),
			Placed:      result.Placed,
			Facets:      len(facets),
			Diagnostics: diagnostics,
		}
		if result.MPD {
			o.Format = importer.FormatMPD
		}
		return PrintStructured(out, format, o)
	}

	fmt.Fprintf(out, "model:  %s\n", m.FileName)
	if m.Description != "" {
		fmt.Fprintf(out, "        %s\n", m.Description)
	}
	fmt.Fprintf(out, "digest: %s\n", m.Digest())
	switch {
	case c.list:
		m.List(out, true)
	case c.flatten:
		PrintFacets(out, facets)
	default:
		PrintPlacements(out, m.Placements(table, nil))
	}
	if len(diagnostics) > 0 {
		fmt.Fprintf(out, "diagnostics:\n")
		for _, d := range diagnostics {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}
	return nil
}

// wait waits for the import task and logs its progress.
func (c *Import) wait(ctx context.Context, task *importer.Task, src source.Source) (*importer.Result, error) {
	for {
		wctx := ctxutil.TimeoutContext(ctx, progressInterval)
		done := task.Wait(wctx)
		ctxutil.Cancel(wctx)
		if done {
			return task.Result()
		}
		if ctx.Err() != nil {
			// the task observes the same context and stops at the next line
			task.Wait(context.Background())
			return task.Result()
		}
		log.Info("importing {{source}}: {{progress}}%", "source", src.Name(), "progress", task.Progress())
	}
}

func PrintPlacements(w io.Writer, list []model.Placement) {
	var rows [][]string
	for _, p := range list {
		target := ""
		if ref, ok := p.Primitive.(*geometry.PartReference); ok {
			target = ref.Target
		}
		rows = append(rows, []string{
			strconv.Itoa(p.ID), strconv.Itoa(p.Step), p.Color.Name, p.Primitive.Kind().String(), p.Transform.T.String(), target,
		})
	}
	PrintTable(w, []string{"ID", "STEP", "COLOR", "KIND", "POSITION", "TARGET"}, rows)
}

func PrintFacets(w io.Writer, list []model.Facet) {
	var rows [][]string
	for _, f := range list {
		color := f.Color.Name
		if f.Edge {
			color += " (edge)"
		}
		rows = append(rows, []string{
			strconv.Itoa(f.ID), strconv.Itoa(f.Step), color, f.Primitive.Kind().String(), strconv.FormatBool(f.Reversed), geometry.Format(f.Primitive),
		})
	}
	PrintTable(w, []string{"ID", "STEP", "COLOR", "KIND", "REVERSED", "GEOMETRY"}, rows)
}
