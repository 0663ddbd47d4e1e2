package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
)

type Colors struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
}

func NewColors(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colors {<code>} <options>",
		Short: "list the color table of the library",
	}

	c := &Colors{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format (json or yaml)")
	return cmd
}

func (c *Colors) Run(args []string) error {
	format, err := outputFormat(c.output)
	if err != nil {
		return err
	}
	if c.mainopts.library == "" {
		return fmt.Errorf("no LDraw library configured")
	}
	lib, err := c.mainopts.Library()
	if err != nil {
		return err
	}
	report := diag.NewReport()
	table, err := lib.Colors(report)
	if err != nil {
		return err
	}

	var list []*colors.Entry
	if len(args) == 0 {
		list = table.Entries()
	} else {
		for _, a := range args {
			id, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid color code %q", a)
			}
			e, err := table.Lookup(id)
			if err != nil {
				return err
			}
			list = append(list, e)
		}
	}

	out := c.cmd.OutOrStdout()
	if format != OutputTable {
		return PrintStructured(out, format, list)
	}
	if len(list) == 0 {
		fmt.Fprintf(out, "no color found\n")
		return nil
	}
	var rows [][]string
	for _, e := range list {
		rows = append(rows, []string{strconv.Itoa(e.ID), e.Name, colors.Hex(e.Fill), colors.Hex(e.Edge)})
	}
	PrintTable(out, []string{"CODE", "NAME", "VALUE", "EDGE"}, rows)
	for _, d := range report.Entries() {
		log.Warn("{{diagnostic}}", "diagnostic", d.String())
	}
	return nil
}
