package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ldraw/pkg/utils"
)

var ErrNotFound = errors.New("file not found")

// Resolver looks up files referenced by a model in an ordered set
// of search roots, typically the directory of the main model and
// an optional additional directory.
type Resolver struct {
	fs    vfs.FileSystem
	roots []string
}

func NewResolver(fs vfs.FileSystem, roots ...string) *Resolver {
	r := &Resolver{fs: utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fs)}
	for _, root := range roots {
		if root != "" {
			r.roots = append(r.roots, root)
		}
	}
	return r
}

func (r *Resolver) FileSystem() vfs.FileSystem {
	return r.fs
}

func (r *Resolver) Roots() []string {
	return append([]string(nil), r.roots...)
}

// WithRoot returns a resolver searching the given directory first.
func (r *Resolver) WithRoot(dir string) *Resolver {
	return NewResolver(r.fs, append([]string{dir}, r.roots...)...)
}

// Lookup searches a referenced identifier. Backslashes are
// accepted as path separator. If the exact spelling does not
// exist, a case-insensitive match of the last path component is
// tried.
func (r *Resolver) Lookup(name string) (Source, error) {
	rel := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	for _, root := range r.roots {
		path := vfs.Join(r.fs, root, rel)
		if r.isFile(path) {
			return File(path, r.fs), nil
		}
		if p := r.fold(vfs.Split(r.fs, path)); p != "" {
			return File(p, r.fs), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (r *Resolver) isFile(path string) bool {
	fi, err := r.fs.Stat(path)
	return err == nil && !fi.IsDir()
}

func (r *Resolver) fold(dir, base string) string {
	list, err := vfs.ReadDir(r.fs, dir)
	if err != nil {
		return ""
	}
	for _, e := range list {
		if !e.IsDir() && strings.EqualFold(e.Name(), base) {
			return vfs.Join(r.fs, dir, e.Name())
		}
	}
	return ""
}
