// Package resolver picks the command template for a path using the files,
// languages and projects mappings, in that order.
package resolver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ecairns22/coderunner/internal/config"
	"github.com/ecairns22/coderunner/internal/detect"
	"github.com/ecairns22/coderunner/internal/language"
)

const (
	PathPlaceholder = "{path}"
	DirPlaceholder  = "{dir}"
)

// Tier names the lookup that produced a match.
type Tier string

const (
	TierFiles     Tier = "files"
	TierLanguages Tier = "languages"
	TierProjects  Tier = "projects"
)

// ErrPlaceholderInPath is returned by CheckPath for paths containing a placeholder literal.
var ErrPlaceholderInPath = errors.New("path contains a placeholder literal")

// ProjectDetector is the subset of detect.Detector used for the last tier.
type ProjectDetector interface {
	Detect(root string) (detect.ProjectType, bool)
}

// Resolution is the outcome of a successful lookup.
type Resolution struct {
	Tier     Tier
	Key      string
	Template string
	Command  string
}

// Resolver picks a command template for a path.
type Resolver struct {
	cfg      *config.Config
	detector ProjectDetector
}

// New creates a Resolver over an immutable config.
func New(cfg *config.Config, d ProjectDetector) *Resolver {
	return &Resolver{cfg: cfg, detector: d}
}

// Resolve returns the substituted command for path, or false when no tier
// matches. The detector only runs when the files and languages tiers miss.
func (r *Resolver) Resolve(path, root string) (*Resolution, bool) {
	tier, key, tmpl, ok := r.lookup(path, root)
	if !ok {
		return nil, false
	}
	return &Resolution{
		Tier:     tier,
		Key:      key,
		Template: tmpl,
		Command:  Substitute(tmpl, path),
	}, true
}

func (r *Resolver) lookup(path, root string) (Tier, string, string, bool) {
	ext := language.Extension(path)
	if ext != "" {
		key := "." + ext
		if tmpl, ok := r.cfg.Files[key]; ok {
			return TierFiles, key, tmpl, true
		}
	}

	if lang, ok := language.Classify(path); ok {
		if tmpl, ok := r.cfg.Languages[lang]; ok {
			return TierLanguages, lang, tmpl, true
		}
	}

	if r.detector == nil || len(r.cfg.Projects) == 0 {
		return "", "", "", false
	}
	if project, ok := r.detector.Detect(root); ok {
		if tmpl, ok := r.cfg.Projects[string(project)]; ok {
			return TierProjects, string(project), tmpl, true
		}
	}
	return "", "", "", false
}

// Substitute replaces every {path} with path and every {dir} with its parent
// directory ("." when there is none).
func Substitute(tmpl, path string) string {
	return strings.NewReplacer(
		PathPlaceholder, path,
		DirPlaceholder, filepath.Dir(path),
	).Replace(tmpl)
}

// CheckPath rejects paths that would reintroduce placeholders during substitution.
func CheckPath(path string) error {
	if strings.Contains(path, PathPlaceholder) || strings.Contains(path, DirPlaceholder) {
		return fmt.Errorf("%w: %q", ErrPlaceholderInPath, path)
	}
	return nil
}
