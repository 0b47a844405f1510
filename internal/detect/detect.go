// Package detect infers a project type from marker files in a directory.
package detect

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// ProjectType is a coarse classification of a directory's toolchain.
type ProjectType string

const (
	Node   ProjectType = "node"
	Python ProjectType = "python"
	Rust   ProjectType = "rust"
	Go     ProjectType = "go"
)

type marker struct {
	project ProjectType
	files   []string
}

// markers are checked in order; the first present wins.
var markers = []marker{
	{Node, []string{"package.json"}},
	{Python, []string{"pyproject.toml", "requirements.txt"}},
	{Rust, []string{"Cargo.toml"}},
	{Go, []string{"go.mod"}},
}

// Detector inspects directories through an afero filesystem.
type Detector struct {
	fs afero.Fs
}

// New returns a Detector reading from fs. A nil fs means the OS filesystem.
func New(fs afero.Fs) *Detector {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Detector{fs: fs}
}

// Detect reports the project type of root. A missing or unreadable directory
// is treated as having no markers.
func (d *Detector) Detect(root string) (ProjectType, bool) {
	for _, m := range markers {
		for _, name := range m.files {
			info, err := d.fs.Stat(filepath.Join(root, name))
			if err == nil && !info.IsDir() {
				return m.project, true
			}
		}
	}
	return "", false
}
