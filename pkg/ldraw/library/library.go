package library

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/ldraw/pkg/ldraw/colors"
	"github.com/mandelsoft/ldraw/pkg/ldraw/diag"
	"github.com/mandelsoft/ldraw/pkg/ldraw/part"
	"github.com/mandelsoft/ldraw/pkg/ldraw/source"
	"github.com/mandelsoft/ldraw/pkg/utils"
)

var ErrNoLibrary = errors.New("no LDraw library")

// partDirs are the library folders whose files may be referenced
// directly. Sub folders like s/ or 48/ are part of the identifier.
var partDirs = []string{"parts", "p", "unofficial/parts", "unofficial/p"}

// Library is the index of the standard parts found in one or more
// LDraw library roots.
type Library struct {
	fs    vfs.FileSystem
	roots []string
	parts sets.Set[string]
	paths map[string]string
}

var _ part.LibraryIndex = (*Library)(nil)

// New indexes the given library roots. Roots without any part
// folder are rejected.
func New(fs vfs.FileSystem, roots ...string) (*Library, error) {
	l := &Library{
		fs:    utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fs),
		parts: sets.New[string](),
		paths: map[string]string{},
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		found := false
		for _, d := range partDirs {
			dir := vfs.Join(l.fs, root, d)
			if ok, err := vfs.DirExists(l.fs, dir); err != nil || !ok {
				continue
			}
			found = true
			if err := l.index(dir, ""); err != nil {
				return nil, fmt.Errorf("cannot index %s: %w", dir, err)
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrNoLibrary, root)
		}
		l.roots = append(l.roots, root)
		log.Info("indexed library {{root}}", "root", root, "parts", l.parts.Len())
	}
	return l, nil
}

// Empty returns a library without any part.
func Empty() *Library {
	return &Library{fs: osfs.OsFs, parts: sets.New[string](), paths: map[string]string{}}
}

func (l *Library) index(dir, prefix string) error {
	list, err := vfs.ReadDir(l.fs, dir)
	if err != nil {
		return err
	}
	for _, e := range list {
		if e.IsDir() {
			err := l.index(vfs.Join(l.fs, dir, e.Name()), prefix+e.Name()+"/")
			if err != nil {
				return err
			}
			continue
		}
		if !strings.EqualFold(path.Ext(e.Name()), ".dat") {
			continue
		}
		key := part.Key(prefix + e.Name())
		if !l.parts.Has(key) {
			// first root wins
			l.parts.Insert(key)
			l.paths[key] = vfs.Join(l.fs, dir, e.Name())
		}
	}
	return nil
}

func (l *Library) IsLibraryPart(id string) bool {
	return l.parts.Has(part.Key(id))
}

// Len returns the number of indexed parts.
func (l *Library) Len() int {
	return l.parts.Len()
}

func (l *Library) Roots() []string {
	return append([]string(nil), l.roots...)
}

// Open returns the source of an indexed part.
func (l *Library) Open(id string) (source.Source, error) {
	p, ok := l.paths[part.Key(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", source.ErrNotFound, id)
	}
	return source.File(p, l.fs), nil
}

// Colors builds the color table from the configuration file of
// the first root providing one. Without configuration file a table
// containing only the invalid entry is returned.
func (l *Library) Colors(reporter diag.Reporter) (*colors.Table, error) {
	t := colors.NewTable()
	for _, root := range l.roots {
		cfg := vfs.Join(l.fs, root, colors.ConfigFile)
		f, err := l.fs.Open(cfg)
		if err != nil {
			if errors.Is(err, vfs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		defer f.Close()
		err = t.Load(colors.ConfigFile, f, reporter)
		if err != nil {
			return nil, err
		}
		log.Info("loaded {{count}} colors from {{path}}", "count", t.Len(), "path", cfg)
		return t, nil
	}
	log.Warn("no color configuration found", "roots", l.roots)
	return t, nil
}
