package app

import (
	"fmt"
	"time"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	"github.com/mandelsoft/ldraw/pkg/ldraw/importer"
	"github.com/mandelsoft/ldraw/pkg/ldraw/library"
	"github.com/mandelsoft/ldraw/pkg/ldraw/model"
	"github.com/mandelsoft/ldraw/pkg/utils"
)

type Options struct {
	library    string
	additional string
	maxDepth   int
	level      string
	config     string
	timeout    time.Duration
	fs         vfs.FileSystem
}

func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.library, "ldraw", "l", o.library, "LDraw library root")
	flags.StringVarP(&o.additional, "additional", "a", o.additional, "additional search root for sub files")
	flags.IntVarP(&o.maxDepth, "max-depth", "d", o.maxDepth, "maximum sub file nesting")
	flags.StringVarP(&o.level, "log-level", "L", o.level, "log level")
	flags.StringVarP(&o.config, "config", "c", o.config, "config file")
	flags.DurationVarP(&o.timeout, "timeout", "t", o.timeout, "import timeout")
}

// Complete merges the configuration files into the options not
// given on the command line.
func (o *Options) Complete(flags *pflag.FlagSet) error {
	l, err := logging.ParseLevel(o.level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", o.level)
	}
	SetLogLevel(l)

	cfg, err := GetConfig(o.fs, o.config)
	if err != nil {
		return err
	}
	if !flags.Changed("ldraw") && cfg.Library != nil {
		o.library = *cfg.Library
	}
	if !flags.Changed("additional") && cfg.Additional != nil {
		o.additional = *cfg.Additional
	}
	if !flags.Changed("max-depth") && cfg.MaxDepth != nil {
		o.maxDepth = *cfg.MaxDepth
	}
	log.Debug("using library {{library}}", "library", o.library, "additional", o.additional)
	return nil
}

// Library indexes the configured library root. Without root an
// empty library is used.
func (o *Options) Library() (*library.Library, error) {
	if o.library == "" {
		return library.Empty(), nil
	}
	return library.New(o.fs, o.library)
}

// Session creates an import session for the configured library.
// Color configuration problems are added to the given reporter.
func (o *Options) Session(reporter diag.Reporter) (*importer.Session, error) {
	lib, err := o.Library()
	if err != nil {
		return nil, err
	}
	var table *colors.Table
	if o.library != "" {
		table, err = lib.Colors(reporter)
		if err != nil {
			return nil, err
		}
	}
	return importer.NewSession(importer.Options{
		Colors:     table,
		Library:    lib,
		FileSystem: o.fs,
		Additional: o.additional,
		MaxDepth:   o.maxDepth,
	}), nil
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{
		level:    "warn",
		maxDepth: model.DefaultMaxDepth,
		fs:       utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
	}

	maincmd := &cobra.Command{
		Use:   "ldctl <options> <cmd> <args>",
		Short: "inspect LDraw models",
		Long: `
This command reads LDraw models (LDR and MPD files) with the
parts library given by --ldraw or the environment variable LDRAWDIR
and lists their content.
`,
		Run:              nil,
		TraverseChildren: true,
		SilenceErrors:    true,
		SilenceUsage:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Complete(cmd.Flags())
		},
	}

	opts.AddFlags(maincmd.PersistentFlags())

	maincmd.AddCommand(NewImport(opts))
	maincmd.AddCommand(NewColors(opts))
	return maincmd
}
