package discover

import (
	"fmt"
	"regexp"
)

// Filter holds compiled include/exclude patterns for repository paths.
// Patterns are regular expressions matched (unanchored, like re.search)
// against the path relative to the traversal root.
//
// Include and exclude are independent: a repository is emitted only if it
// matches at least one include pattern (when any are set) AND matches no
// exclude pattern.
type Filter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewFilter compiles include and exclude patterns.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
		f.include = append(f.include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		f.exclude = append(f.exclude, re)
	}
	return f, nil
}

// Included reports whether rel passes the include patterns.
// With no include patterns configured, everything is included.
func (f *Filter) Included(rel string) bool {
	if f == nil || len(f.include) == 0 {
		return true
	}
	for _, re := range f.include {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// Excluded reports whether rel matches any exclude pattern.
// Excluded directories are pruned: the walk does not descend into them.
func (f *Filter) Excluded(rel string) bool {
	if f == nil {
		return false
	}
	for _, re := range f.exclude {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}
