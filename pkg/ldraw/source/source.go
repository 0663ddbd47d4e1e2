package source

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	"github.com/mandelsoft/ldraw/pkg/utils"
)

// Source is a re-openable line source. Every Open restarts
// reading at the beginning.
type Source interface {
	Name() string
	// Dir is the directory used to resolve sibling files.
	Dir() string
	Open() (io.ReadCloser, error)
}

type fileSource struct {
	fs   vfs.FileSystem
	path string
}

// File provides a source for a file of a virtual filesystem.
// The OS filesystem is used if none is given.
func File(path string, fss ...vfs.FileSystem) Source {
	return &fileSource{fs: utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...), path: path}
}

func (s *fileSource) Name() string {
	return vfs.Base(s.fs, s.path)
}

func (s *fileSource) Dir() string {
	return vfs.Dir(s.fs, s.path)
}

func (s *fileSource) Path() string {
	return s.path
}

func (s *fileSource) Open() (io.ReadCloser, error) {
	return s.fs.Open(s.path)
}

type stringSource struct {
	name    string
	dir     string
	content string
}

// String provides a source for in-memory content. Sibling files
// are resolved relative to dir.
func String(name, content string, dir ...string) Source {
	return &stringSource{name: name, content: content, dir: utils.OptionalDefaulted(".", dir...)}
}

func (s *stringSource) Name() string {
	return s.name
}

func (s *stringSource) Dir() string {
	return s.dir
}

func (s *stringSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.content)), nil
}

// MaxLineLength is the maximum length of a line in bytes.
// Longer lines are skipped.
const MaxLineLength = 1024 * 1024

// LineHandler is called for every line with its 1-based number.
type LineHandler func(no int, line string) error

// ForEachLine opens the source, passes every line to the handler
// and closes it again. The context is checked between lines.
// Lines exceeding MaxLineLength are not passed to the handler, they
// are reported to the given reporters.
func ForEachLine(ctx context.Context, src Source, h LineHandler, reporters ...diag.Reporter) error {
	return scan(ctx, src, h, func(no int) {
		for _, r := range reporters {
			r.Report(src.Name(), no, fmt.Sprintf("line too long (more than %d bytes), skipped", MaxLineLength))
		}
	})
}

// CountLines returns the number of lines of a source, including
// the ones exceeding MaxLineLength.
func CountLines(ctx context.Context, src Source) (int, error) {
	n := 0
	err := scan(ctx, src, func(int, string) error {
		n++
		return nil
	}, func(int) { n++ })
	return n, err
}

func scan(ctx context.Context, src Source, h LineHandler, skipped func(no int)) error {
	in, err := src.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	r := bufio.NewReaderSize(in, 64*1024)
	var buf []byte
	no := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, long, err := readLine(r, buf)
		buf = line
		if err != nil && err != io.EOF {
			return fmt.Errorf("%s line %d: %w", src.Name(), no+1, err)
		}
		if err == io.EOF && len(line) == 0 && !long {
			return nil
		}
		no++
		if long {
			skipped(no)
		} else {
			text := strings.TrimSuffix(strings.TrimSuffix(string(line), "\n"), "\r")
			if err := h(no, text); err != nil {
				return err
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// readLine reads the next line including its terminator into buf.
// The content of a line exceeding MaxLineLength is dropped, but the
// line is consumed completely.
func readLine(r *bufio.Reader, buf []byte) ([]byte, bool, error) {
	buf = buf[:0]
	long := false
	for {
		chunk, err := r.ReadSlice('\n')
		if !long {
			if len(buf)+len(chunk) > MaxLineLength+2 {
				long = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if !long && len(bytes.TrimSuffix(bytes.TrimSuffix(buf, []byte("\n")), []byte("\r"))) > MaxLineLength {
			long = true
			buf = buf[:0]
		}
		return buf, long, err
	}
}
