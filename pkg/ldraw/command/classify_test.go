package command_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/ldraw/pkg/ldraw/command"
)

var _ = Describe("line classification", func() {
	DescribeTable("kinds",
		func(line string, kind me.Kind) {
			Expect(me.Classify(line)).To(Equal(kind))
		},
		Entry("blank", "", me.Empty),
		Entry("single token", "0", me.Empty),
		Entry("single meta token", "   0   ", me.Empty),
		Entry("comment", "0 // a comment", me.Comment),
		Entry("colour", "0 !COLOUR Red CODE 4 VALUE #FF0000 EDGE #330000", me.Colour),
		Entry("colour lower", "0 !colour Red CODE 4", me.Colour),
		Entry("certify cw", "0 BFC CERTIFY CW", me.BFCCertifyCW),
		Entry("certify ccw", "0 BFC CERTIFY CCW", me.BFCCertifyCCW),
		Entry("certify default", "0 BFC CERTIFY", me.BFCCertifyCCW),
		Entry("cw", "0 bfc cw", me.BFCCertifyCW),
		Entry("ccw", "0 BFC CCW", me.BFCCertifyCCW),
		Entry("clip cw", "0 BFC CLIP CW", me.BFCCertifyCW),
		Entry("invertnext", "0 BFC INVERTNEXT", me.BFCInvertNext),
		Entry("deprecated invertnext", "0 BFC CERTIFY INVERTNEXT", me.BFCInvertNext),
		Entry("bare bfc", "0 BFC", me.MetaUnknown),
		Entry("nocertify", "0 BFC NOCERTIFY", me.MetaUnknown),
		Entry("file", "0 FILE main.ldr", me.MPDFile),
		Entry("nofile", "0 NOFILE", me.MPDNoFile),
		Entry("category", "0 !CATEGORY Brick", me.Category),
		Entry("keywords", "0 !KEYWORDS a, b", me.Keywords),
		Entry("name", "0 Name: 3001.dat", me.Name),
		Entry("author", "0 Author: James Jessiman", me.Author),
		Entry("step", "0 STEP", me.Step),
		Entry("ldraw org", "0 !LDRAW_ORG Part UPDATE 2004-03", me.FileType),
		Entry("old ldraw org", "0 LDRAW_ORG Part", me.FileType),
		Entry("official", "0 Official LCAD Part", me.FileType),
		Entry("unofficial", "0 Unofficial Part", me.FileType),
		Entry("un-official", "0 Un-official Part", me.FileType),
		Entry("description", "0 Brick  2 x  4", me.MetaUnknown),
		Entry("reference", "1 16 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat", me.Reference),
		Entry("line", "2 24 0 0 0 1 1 1", me.Line),
		Entry("triangle", "3 16 0 0 0 1 0 0 0 1 0", me.Triangle),
		Entry("quad", "4 16 0 0 0 1 0 0 1 1 0 0 1 0", me.Quad),
		Entry("auxline", "5 24 0 0 0 1 0 0 0 1 0 1 1 0", me.AuxLine),
		Entry("unknown", "7 foo", me.Unknown),
	)

	It("reports the deprecated spelling", func() {
		cmd := me.Parse("0 BFC CERTIFY INVERTNEXT")
		Expect(cmd.Kind).To(Equal(me.BFCInvertNext))
		Expect(cmd.Deprecated).NotTo(BeEmpty())

		cmd = me.Parse("0 BFC INVERTNEXT")
		Expect(cmd.Deprecated).To(BeEmpty())
	})

	It("classifies geometry kinds", func() {
		Expect(me.Reference.IsGeometry()).To(BeTrue())
		Expect(me.Reference.IsPrimitive()).To(BeFalse())
		Expect(me.Quad.IsPrimitive()).To(BeTrue())
		Expect(me.Step.IsGeometry()).To(BeFalse())
		Expect(me.Quad.String()).To(Equal("quad"))
	})

	Context("payloads", func() {
		It("extracts texts", func() {
			Expect(me.Description("0 Brick  2 x 4 ")).To(Equal("Brick  2 x 4"))
			Expect(me.AuthorOf("0 Author: James Jessiman")).To(Equal("James Jessiman"))
			Expect(me.PartNameOf("0 Name: my part.dat")).To(Equal("my part.dat"))
			Expect(me.CategoryOf("0 !CATEGORY Brick")).To(Equal("Brick"))
			Expect(me.KeywordsOf("0 !KEYWORDS a, b")).To(Equal("a, b"))
		})

		It("extracts MPD file names", func() {
			Expect(me.MPDFileName("0 FILE  sub model.ldr ")).To(Equal("sub model.ldr"))
			_, err := me.MPDFileName("0 FILE")
			Expect(err).To(HaveOccurred())
		})
	})
})
