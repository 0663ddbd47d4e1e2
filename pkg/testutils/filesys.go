package testutils

import (
	"github.com/mandelsoft/vfs/pkg/composefs"
	"github.com/mandelsoft/vfs/pkg/layerfs"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/projectionfs"
	"github.com/mandelsoft/vfs/pkg/readonlyfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// TestFileSystem provides a filesystem with the given OS directory
// mounted at the same relative path, typically a testdata folder
// holding LDraw libraries and models. Without readonly, writes go to
// a temporary layer and never reach the OS directory. All other
// paths are served by a temporary filesystem, which is removed by
// vfs.Cleanup.
func TestFileSystem(path string, readonly bool) (vfs.FileSystem, error) {
	tmpfs, err := osfs.NewTempFileSystem()
	if err != nil {
		return nil, err
	}

	fs, err := mount(tmpfs, path, readonly)
	if err != nil {
		vfs.Cleanup(tmpfs)
		return nil, err
	}
	return fs, nil
}

func mount(tmpfs vfs.FileSystem, path string, readonly bool) (vfs.FileSystem, error) {
	err := tmpfs.MkdirAll(path, 0o700)
	if err != nil {
		return nil, err
	}

	data, err := projectionfs.New(osfs.OsFs, path)
	if err != nil {
		return nil, err
	}
	if readonly {
		data = readonlyfs.New(data)
	} else {
		upper, err := projectionfs.New(tmpfs, path)
		if err != nil {
			return nil, err
		}
		data = layerfs.New(upper, data)
	}

	fs := composefs.New(tmpfs, "/tmp")
	err = fs.Mount(path, data)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
