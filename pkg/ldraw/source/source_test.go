package source_test

import (
	"context"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	. "github.com/mandelsoft/ldraw/pkg/testutils"

	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	me "github.com/mandelsoft/ldraw/pkg/ldraw/source"
)

var _ = Describe("sources", func() {
	var fs vfs.FileSystem

	BeforeEach(func() {
		fs = memoryfs.New()
		MustBeSuccessful(fs.MkdirAll("/models/sub", 0o755))
		MustBeSuccessful(fs.MkdirAll("/extra", 0o755))
		MustBeSuccessful(vfs.WriteFile(fs, "/models/main.ldr", []byte("0 Main\n1 16 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat\n"), 0o644))
		MustBeSuccessful(vfs.WriteFile(fs, "/models/sub/Wall.ldr", []byte("0 Wall\n"), 0o644))
		MustBeSuccessful(vfs.WriteFile(fs, "/extra/roof.ldr", []byte("0 Roof\n"), 0o644))
	})

	It("reads lines repeatedly", func() {
		src := me.File("/models/main.ldr", fs)
		Expect(src.Name()).To(Equal("main.ldr"))
		Expect(src.Dir()).To(Equal("/models"))
		Expect(me.CountLines(context.Background(), src)).To(Equal(2))

		var got []string
		MustBeSuccessful(me.ForEachLine(context.Background(), src, func(no int, line string) error {
			got = append(got, line)
			return nil
		}))
		Expect(got).To(Equal([]string{"0 Main", "1 16 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat"}))
	})

	It("stops on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := me.CountLines(ctx, me.String("inline.ldr", "0 a\n0 b\n"))
		Expect(err).To(MatchError(context.Canceled))
	})

	It("skips overlong lines", func() {
		src := me.String("long.ldr", "0 a\r\n"+strings.Repeat("x", 2*me.MaxLineLength)+"\n0 b\r\n0 c")
		Expect(me.CountLines(context.Background(), src)).To(Equal(4))

		report := diag.NewReport()
		var got []string
		MustBeSuccessful(me.ForEachLine(context.Background(), src, func(no int, line string) error {
			got = append(got, fmt.Sprintf("%d:%s", no, line))
			return nil
		}, report))
		Expect(got).To(Equal([]string{"1:0 a", "3:0 b", "4:0 c"}))
		Expect(report.Entries()).To(Equal([]diag.Diagnostic{{Source: "long.ldr", Line: 2, Message: "line too long (more than 1048576 bytes), skipped"}}))
	})

	It("accepts lines up to the limit", func() {
		line := strings.Repeat("y", me.MaxLineLength)
		var got []string
		MustBeSuccessful(me.ForEachLine(context.Background(), me.String("max.ldr", line+"\r\n"), func(no int, line string) error {
			got = append(got, line)
			return nil
		}))
		Expect(got).To(Equal([]string{line}))

		report := diag.NewReport()
		got = nil
		MustBeSuccessful(me.ForEachLine(context.Background(), me.String("max.ldr", line+"z\n0 b"), func(no int, line string) error {
			got = append(got, line)
			return nil
		}, report))
		Expect(got).To(Equal([]string{"0 b"}))
		Expect(report.Len()).To(Equal(1))
	})

	It("resolves references", func() {
		r := me.NewResolver(fs, "/models", "", "/extra")
		Expect(r.Roots()).To(Equal([]string{"/models", "/extra"}))

		src := Must(r.Lookup(`sub\wall.LDR`))
		Expect(src.Name()).To(Equal("Wall.ldr"))
		src = Must(r.Lookup("roof.ldr"))
		Expect(src.Dir()).To(Equal("/extra"))

		_, err := r.Lookup("missing.ldr")
		Expect(err).To(MatchError(me.ErrNotFound))

		Expect(r.WithRoot("/extra").Roots()).To(Equal([]string{"/extra", "/models", "/extra"}))
	})
})
