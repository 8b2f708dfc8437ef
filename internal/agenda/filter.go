package agenda

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/calgrid/internal/errors"
)

// Filter selects entries by glob patterns over their title and tags.
// Matching is case-insensitive.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles include and exclude patterns. An empty include list
// accepts everything that is not excluded.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.include, err = compileAll("include", include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileAll("exclude", exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compileAll(field string, patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, errors.NewValidationError("invalid glob pattern").
				WithField(field).
				WithValue(pattern).
				WithCause(err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Match reports whether e passes the filter. A nil Filter matches everything.
func (f *Filter) Match(e Entry) bool {
	if f == nil {
		return true
	}
	if len(f.include) > 0 && !matchAny(f.include, e) {
		return false
	}
	return !matchAny(f.exclude, e)
}

// Apply returns the entries that pass the filter.
func (f *Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func matchAny(globs []glob.Glob, e Entry) bool {
	title := strings.ToLower(e.Title)
	for _, g := range globs {
		if g.Match(title) {
			return true
		}
		for _, tag := range e.Tags {
			if g.Match(strings.ToLower(tag)) {
				return true
			}
		}
	}
	return false
}
