package geometry_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/mandelsoft/ldraw/pkg/testutils"

	"github.com/mandelsoft/ldraw/pkg/ldraw/command"
	me "github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
)

var _ = Describe("geometry decoder", func() {
	Context("colors", func() {
		It("parses indices and direct colors", func() {
			Expect(me.ParseColorID("16")).To(Equal(16))
			Expect(me.ParseColorID("-1")).To(Equal(-1))
			Expect(me.ParseColorID("0x2123456")).To(Equal(0x201e240))
			Expect(me.ParseColorID("0x216711680")).To(Equal(0x2000000 + 0xFF0000))
			Expect(me.ParseColorID("0x20")).To(Equal(0x2000000))
			Expect(me.ParseColorID("0x10")).To(Equal(16))
			_, err := me.ParseColorID("0x2FF0000")
			Expect(err).To(MatchError(me.ErrInvalidColor))
			_, err = me.ParseColorID("0x2")
			Expect(err).To(MatchError(me.ErrInvalidColor))
			_, err = me.ParseColorID("0x2-5")
			Expect(err).To(MatchError(me.ErrInvalidColor))
			_, err = me.ParseColorID("red")
			Expect(err).To(MatchError(me.ErrInvalidColor))
			_, err = me.ParseColorID("0x")
			Expect(err).To(MatchError(me.ErrInvalidColor))
		})

		It("formats colors", func() {
			Expect(me.FormatColorID(4)).To(Equal("4"))
			Expect(me.FormatColorID(0x2FF0000)).To(Equal("0x216711680"))
			Expect(me.ParseColorID(me.FormatColorID(0x201e240))).To(Equal(0x201e240))
		})
	})

	Context("reference", func() {
		It("decodes the identity placement", func() {
			r := Must(me.DecodeReference("1 16 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat", false))
			Expect(r.Color).To(Equal(16))
			Expect(r.Target).To(Equal("3001.dat"))
			Expect(r.Transform.IsIdentity()).To(BeTrue())
			Expect(r.Invert).To(BeFalse())
			Expect(r.Kind()).To(Equal(command.Reference))
		})

		It("keeps blanks in identifiers", func() {
			r := Must(me.DecodeReference("  1 4 10 -8 2.5 1 0 0 0 1 0 0 0 1  my sub model.ldr ", true))
			Expect(r.Target).To(Equal("my sub model.ldr"))
			Expect(r.Transform.T).To(Equal(me.Vector{10, -8, 2.5}))
			Expect(r.Invert).To(BeTrue())
		})

		It("fails on missing fields", func() {
			_, err := me.DecodeReference("1 16 0 0 0 1 0 0 0 1 0 0 0 1", false)
			Expect(err).To(MatchError(me.ErrTooFewFields))
			_, err = me.DecodeReference("1 16 0 0 0", false)
			Expect(err).To(MatchError(me.ErrTooFewFields))
		})

		It("fails on malformed numbers", func() {
			_, err := me.DecodeReference("1 16 0 0 x 1 0 0 0 1 0 0 0 1 3001.dat", false)
			Expect(err).To(MatchError(me.ErrMalformedNumber))
			Expect(err.Error()).To(ContainSubstring("x"))
		})
	})

	DescribeTable("decoding errors",
		func(kind command.Kind, line string, expected error) {
			_, err := me.Decode(kind, line, false)
			Expect(err).To(MatchError(expected))
		},
		Entry("short line", command.Line, "2 24 0 0 0 1 1", me.ErrTooFewFields),
		Entry("long line", command.Line, "2 24 0 0 0 1 1 1 1", me.ErrTrailingFields),
		Entry("bad triangle", command.Triangle, "3 16 0 0 0 1 0 0 0 1 a", me.ErrMalformedNumber),
		Entry("bad color", command.Quad, "4 zz 0 0 0 1 0 0 1 1 0 0 1 0", me.ErrInvalidColor),
		Entry("short aux", command.AuxLine, "5 24 0 0 0 1 0 0", me.ErrTooFewFields),
		Entry("wrong type", command.Triangle, "4 16 0 0 0 1 0 0 1 1 0 0 1 0", me.ErrLineType),
		Entry("no geometry", command.Step, "0 STEP", me.ErrLineType),
	)

	DescribeTable("round trip",
		func(kind command.Kind, line string) {
			p := Must(me.Decode(kind, line, false))
			Expect(p.Kind()).To(Equal(kind))
			text := me.Format(p)
			Expect(text).To(Equal(line))
			Expect(me.Decode(kind, text, false)).To(Equal(p))
		},
		Entry("reference", command.Reference, "1 0x216744448 1.5 -2 3 0 0 1 0 1 0 -1 0 0 s/3001s01.dat"),
		Entry("line", command.Line, "2 24 0 0 0 1.25 1e-05 -3"),
		Entry("triangle", command.Triangle, "3 16 0 0 0 1 0 0 0 1 0.333333"),
		Entry("quad", command.Quad, "4 16 0 0 0 1 0 0 1 1 0 0 1 0"),
		Entry("auxline", command.AuxLine, "5 24 0 0 0 1 0 0 0 1 0 1 1 0"),
	)

	It("keeps invert flags", func() {
		t := Must(me.DecodeTriangle("3 16 0 0 0 1 0 0 0 1 0", true))
		Expect(t.Invert).To(BeTrue())
		q := Must(me.DecodeQuad("4 16 0 0 0 1 0 0 1 1 0 0 1 0", true))
		Expect(q.Invert).To(BeTrue())
		l := Must(me.Decode(command.Line, "2 24 0 0 0 1 1 1", true))
		Expect(l.(*me.Line).Points[1]).To(Equal(me.Vector{1, 1, 1}))
	})

	Context("transforms", func() {
		It("composes transforms", func() {
			rot := me.NewTransform([12]float64{10, 0, 0, 0, -1, 0, 1, 0, 0, 0, 0, 1})
			move := me.NewTransform([12]float64{0, 5, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1})
			c := rot.Compose(move)
			Expect(c.Apply(me.Vector{1, 0, 0})).To(Equal(rot.Apply(move.Apply(me.Vector{1, 0, 0}))))
			Expect(c.T).To(Equal(me.Vector{5, 0, 0}))
			Expect(me.Identity().Compose(rot)).To(Equal(rot))
			Expect(rot.Values()).To(Equal([12]float64{10, 0, 0, 0, -1, 0, 1, 0, 0, 0, 0, 1}))
		})

		It("detects mirroring", func() {
			Expect(me.Identity().Mirrors()).To(BeFalse())
			mirror := me.NewTransform([12]float64{0, 0, 0, -1, 0, 0, 0, 1, 0, 0, 0, 1})
			Expect(mirror.Mirrors()).To(BeTrue())
			Expect(mirror.Compose(mirror).Mirrors()).To(BeFalse())
			Expect(math.Abs(mirror.Determinant() + 1)).To(BeNumerically("<", 1e-12))
		})

		It("transforms primitives", func() {
			move := me.NewTransform([12]float64{1, 2, 3, 1, 0, 0, 0, 1, 0, 0, 0, 1})
			l := me.Transformed(&me.Line{Color: 24, Points: [2]me.Vector{{0, 0, 0}, {1, 1, 1}}}, move).(*me.Line)
			Expect(l.Points).To(Equal([2]me.Vector{{1, 2, 3}, {2, 3, 4}}))
			r := me.Transformed(&me.PartReference{Transform: me.Identity(), Target: "x"}, move).(*me.PartReference)
			Expect(r.Transform).To(Equal(move))
			Expect(me.Points(r)).To(Equal([]me.Vector{{1, 2, 3}}))
		})
	})
})
