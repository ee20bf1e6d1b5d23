package project

import (
	"io/fs"
	"os"
	"path/filepath"
)

// DirFS returns a WriteFS rooted at dir on the host filesystem.
func DirFS(dir string) WriteFS {
	return &osFS{root: dir, FS: os.DirFS(dir)}
}

type osFS struct {
	root string
	fs.FS
}

func (o *osFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(filepath.Join(o.root, filepath.FromSlash(path)), data, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(filepath.Join(o.root, filepath.FromSlash(path)), perm)
}
