package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/mandelsoft/vfs/pkg/vfs"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	. "github.com/mandelsoft/ldraw/pkg/testutils"

	"github.com/mandelsoft/ldraw/cmds/ldctl/app"
	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	"github.com/mandelsoft/ldraw/pkg/ldraw/importer"
)

func setenv(name, value string) {
	old, ok := os.LookupEnv(name)
	if value == "" {
		os.Unsetenv(name)
	} else {
		os.Setenv(name, value)
	}
	DeferCleanup(func() {
		if ok {
			os.Setenv(name, old)
		} else {
			os.Unsetenv(name)
		}
	})
}

var _ = Describe("ldctl", func() {
	var fs vfs.FileSystem

	var cmd *cobra.Command
	var buf *bytes.Buffer

	run := func(args ...string) error {
		cmd.SetOut(buf)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		setenv("LDRAWDIR", "")
		setenv("LDRAW_ADDITIONAL", "")
		setenv("LDRAW_MAX_DEPTH", "")

		fs = Must(TestFileSystem("testdata", false))
		buf = bytes.NewBuffer(nil)
		cmd = app.New(fs)
	})

	AfterEach(func() {
		vfs.Cleanup(fs)
	})

	Context("colors", func() {
		It("lists the color table", func() {
			MustBeSuccessful(run("--ldraw", "testdata/ldraw", "colors"))
			Expect("\n" + buf.String()).To(Equal(`
CODE NAME VALUE   EDGE
1    Blue #0055BF #05131D
4    Red  #C91A09 #333333
`))
		})

		It("selects colors", func() {
			MustBeSuccessful(run("--ldraw", "testdata/ldraw", "colors", "4", "-o", "yaml"))
			Expect(buf.String()).To(MatchYAML(`
- code: 4
  name: Red
  value: {R: 201, G: 26, B: 9, A: 255}
  edge: {R: 51, G: 51, B: 51, A: 255}
`))
		})

		It("rejects unknown colors", func() {
			Expect(run("--ldraw", "testdata/ldraw", "colors", "77")).To(MatchError(colors.ErrUnknownColor))
		})

		It("requires a library", func() {
			MustFailWithMessage(run("colors"), "no LDraw library configured")
		})

		It("takes the library from the environment", func() {
			setenv("LDRAW_TEST_DATA", "testdata")
			setenv("LDRAWDIR", "${LDRAW_TEST_DATA}/ldraw")
			MustBeSuccessful(run("colors", "1"))
			Expect(buf.String()).To(ContainSubstring("Blue #0055BF #05131D"))
		})

		It("takes the library from a config file", func() {
			MustBeSuccessful(vfs.WriteFile(fs, "config.yaml", []byte("ldraw: testdata/ldraw\n"), 0o600))
			MustBeSuccessful(run("--config", "config.yaml", "colors", "1"))
			Expect(buf.String()).To(ContainSubstring("Blue #0055BF #05131D"))
		})

		It("prefers flags over the config file", func() {
			MustBeSuccessful(vfs.WriteFile(fs, "config.yaml", []byte("ldraw: testdata/other\n"), 0o600))
			MustBeSuccessful(run("--config", "config.yaml", "--ldraw", "testdata/ldraw", "colors", "1"))
			Expect(buf.String()).To(ContainSubstring("Blue"))
		})
	})

	Context("import", func() {
		It("lists placements", func() {
			MustBeSuccessful(run("--ldraw", "testdata/ldraw", "import", "testdata/models/brick.ldr"))
			out := buf.String()
			Expect(out).To(HavePrefix("model:  brick.ldr\n        Simple model\ndigest: "))
			Expect(out).To(ContainSubstring("ID STEP COLOR KIND      POSITION  TARGET\n"))
			Expect(out).To(ContainSubstring("1  1    Red   reference (0,0,0)   3001.dat\n"))
			Expect(out).To(ContainSubstring("2  1    Blue  reference (0,-24,0) 3001.dat\n"))
			Expect(out).To(HaveSuffix("diagnostics:\n  [brick.ldr] line# 7> unknown part: missing.dat\n"))
		})

		It("reports the import result", func() {
			MustBeSuccessful(run("--ldraw", "testdata/ldraw", "import", "testdata/models/brick.ldr", "-o", "json"))

			var o app.ImportOutput
			MustBeSuccessful(json.Unmarshal(buf.Bytes(), &o))
			Expect(o.Name).To(Equal("brick.ldr"))
			Expect(o.Description).To(Equal("Simple model"))
			Expect(o.Author).To(Equal("Tester"))
			Expect(o.Format).To(Equal(importer.FormatLDR))
			Expect(o.Parts).To(Equal(2))
			Expect(o.Placed).To(Equal(2))
			Expect(o.Steps).To(Equal(1))
			Expect(o.Kinds).To(Equal(map[string]int{"reference": 2}))
			Expect(o.Digest).To(HaveLen(64))
			Expect(o.Diagnostics).To(Equal([]diag.Diagnostic{{Source: "brick.ldr", Line: 7, Message: "unknown part: missing.dat"}}))
		})

		It("flattens multi-part documents", func() {
			MustBeSuccessful(run("--ldraw", "testdata/ldraw", "import", "testdata/models/house.mpd", "--flatten", "-o", "yaml"))

			var o app.ImportOutput
			MustBeSuccessful(yaml.Unmarshal(buf.Bytes(), &o))
			Expect(o.Name).To(Equal("house.ldr"))
			Expect(o.Description).To(Equal("House"))
			Expect(o.Format).To(Equal(importer.FormatMPD))
			Expect(o.Parts).To(Equal(2))
			Expect(o.Facets).To(Equal(3))
			Expect(o.Diagnostics).To(BeEmpty())
		})

		It("prints facets", func() {
			MustBeSuccessful(run("--ldraw", "testdata/ldraw", "import", "testdata/models/house.mpd", "--flatten"))
			out := buf.String()
			Expect(out).To(ContainSubstring("ID STEP COLOR KIND      REVERSED GEOMETRY\n"))
			Expect(out).To(ContainSubstring(`
1  1    Red   reference false    1 16 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat
1  1    Red   reference false    1 16 40 0 0 1 0 0 0 1 0 0 0 1 3001.dat
2  1    Blue  reference false    1 1 0 -24 0 1 0 0 0 1 0 0 0 1 3001.dat
`))
			Expect(out).NotTo(ContainSubstring("diagnostics:"))
		})

		It("produces stable digests", func() {
			MustBeSuccessful(run("--ldraw", "testdata/ldraw", "import", "testdata/models/brick.ldr", "-o", "json"))
			var a app.ImportOutput
			MustBeSuccessful(json.Unmarshal(buf.Bytes(), &a))

			buf.Reset()
			cmd = app.New(fs)
			MustBeSuccessful(run("--ldraw", "testdata/ldraw", "import", "testdata/models/brick.ldr", "-o", "json"))
			var b app.ImportOutput
			MustBeSuccessful(json.Unmarshal(buf.Bytes(), &b))
			Expect(b.Digest).To(Equal(a.Digest))
		})

		It("fails for missing files", func() {
			err := run("--ldraw", "testdata/ldraw", "import", "testdata/models/none.ldr")
			Expect(err).To(MatchError(vfs.ErrNotExist))
		})

		It("stops on timeout", func() {
			err := run("--ldraw", "testdata/ldraw", "--timeout", "1ns", "import", "testdata/models/brick.ldr")
			Expect(err).To(MatchError(importer.ErrCancelled))
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})

		It("rejects unknown output formats", func() {
			MustFailWithMessage(run("import", "testdata/models/brick.ldr", "-o", "xml"), `unknown output format "xml"`)
		})

		It("rejects invalid log levels", func() {
			MustFailWithMessage(run("-L", "loud", "import", "testdata/models/brick.ldr"), `invalid log level "loud"`)
		})
	})
})
