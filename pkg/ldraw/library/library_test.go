package library_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	. "github.com/mandelsoft/ldraw/pkg/testutils"

	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	me "github.com/mandelsoft/ldraw/pkg/ldraw/library"
	"github.com/mandelsoft/ldraw/pkg/ldraw/source"
)

var _ = Describe("library", func() {
	var fs vfs.FileSystem

	write := func(path, content string) {
		MustBeSuccessful(vfs.WriteFile(fs, path, []byte(content), 0o644))
	}

	BeforeEach(func() {
		fs = memoryfs.New()
		MustBeSuccessful(fs.MkdirAll("/ldraw/parts/s", 0o755))
		MustBeSuccessful(fs.MkdirAll("/ldraw/p/48", 0o755))
		MustBeSuccessful(fs.MkdirAll("/ldraw/unofficial/parts", 0o755))
		MustBeSuccessful(fs.MkdirAll("/custom/parts", 0o755))
		write("/ldraw/parts/3001.dat", "0 Brick  2 x  4\n")
		write("/ldraw/parts/s/3001s01.DAT", "0 ~Brick  2 x  4 without Front Face\n")
		write("/ldraw/parts/readme.txt", "not a part\n")
		write("/ldraw/p/48/4-4cyli.dat", "0 Hi-Res Cylinder 1.0\n")
		write("/ldraw/unofficial/parts/99999.dat", "0 Unofficial\n")
		write("/custom/parts/3001.dat", "0 Custom brick\n")
		write("/custom/parts/4711.dat", "0 Custom part\n")
		write("/ldraw/LDConfig.ldr", "0 !COLOUR Red CODE 4 VALUE #FF0000 EDGE #330000\n0 !COLOUR Broken CODE 5\n")
	})

	It("indexes part folders", func() {
		l := Must(me.New(fs, "/ldraw", "/custom"))
		Expect(l.Len()).To(Equal(5))
		Expect(l.IsLibraryPart("3001.dat")).To(BeTrue())
		Expect(l.IsLibraryPart(`S\3001S01.dat`)).To(BeTrue())
		Expect(l.IsLibraryPart("48/4-4cyli.dat")).To(BeTrue())
		Expect(l.IsLibraryPart("99999.dat")).To(BeTrue())
		Expect(l.IsLibraryPart("4711.dat")).To(BeTrue())
		Expect(l.IsLibraryPart("readme.txt")).To(BeFalse())
		Expect(l.Roots()).To(Equal([]string{"/ldraw", "/custom"}))
	})

	It("opens parts from the first root", func() {
		l := Must(me.New(fs, "/ldraw", "/custom"))
		src := Must(l.Open("3001.DAT"))
		Expect(src.Dir()).To(Equal("/ldraw/parts"))

		src = Must(l.Open(`s\3001s01.dat`))
		Expect(src.Name()).To(Equal("3001s01.DAT"))
		Expect(src.Dir()).To(Equal("/ldraw/parts/s"))
		Expect(Must(l.Open("48/4-4cyli.dat")).Dir()).To(Equal("/ldraw/p/48"))
		Expect(Must(l.Open("99999.dat")).Dir()).To(Equal("/ldraw/unofficial/parts"))

		_, err := l.Open("1.dat")
		Expect(err).To(MatchError(source.ErrNotFound))
	})

	It("rejects roots without parts", func() {
		_, err := me.New(fs, "/ldraw/parts/s")
		Expect(err).To(MatchError(me.ErrNoLibrary))
	})

	It("loads the color configuration", func() {
		l := Must(me.New(fs, "/custom", "/ldraw"))
		r := diag.NewReport()
		t := Must(l.Colors(r))
		Expect(t.Len()).To(Equal(1))
		Expect(t.IsValid(4)).To(BeTrue())
		Expect(r.Entries()).To(HaveLen(1))
		Expect(r.Entries()[0].Line).To(Equal(2))
	})

	It("provides an empty library", func() {
		l := me.Empty()
		Expect(l.Len()).To(Equal(0))
		Expect(l.IsLibraryPart("3001.dat")).To(BeFalse())
		Expect(Must(l.Colors(nil)).Len()).To(Equal(0))
	})
})
