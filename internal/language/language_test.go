package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"/tmp/x.py":       "py",
		"/tmp/X.PY":       "py",
		"main.Go":         "go",
		"archive.tar.gz":  "gz",
		"/tmp/Makefile":   "",
		"/tmp/trailing.":  "",
		"/tmp/dir.d/file": "",
		"relative/x.rs":   "rs",
		".bashrc":         "bashrc",
	}
	for path, want := range tests {
		assert.Equal(t, want, Extension(path), "Extension(%q)", path)
	}
}

func TestClassify(t *testing.T) {
	lang, ok := Classify("/src/lib.rs")
	assert.True(t, ok)
	assert.Equal(t, "rust", lang)

	lang, ok = Classify("script.PY")
	assert.True(t, ok)
	assert.Equal(t, "python", lang)

	lang, ok = Classify("notes.unknownext")
	assert.True(t, ok)
	assert.Equal(t, "unknownext", lang)

	_, ok = Classify("Dockerfile")
	assert.False(t, ok)
}
