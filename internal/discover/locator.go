package discover

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMaxDepth is the default maximum recursion depth below the start.
const DefaultMaxDepth = 3

// Repo identifies one discovered repository root.
type Repo struct {
	// Path is the absolute path to the repository root.
	Path string

	// Rel is the path relative to the traversal root ("." for the root
	// itself). Used for filter matching and output prefixing.
	Rel string

	// Depth is the number of levels below the traversal root (root = 0).
	Depth int
}

// Warning represents a non-fatal problem encountered during the walk,
// typically an unreadable directory that was skipped.
type Warning struct {
	Path string
	Err  error
}

// Locator walks the tree below Root looking for repository roots.
type Locator struct {
	// Root is the absolute starting directory.
	Root string

	// MaxDepth bounds the walk; directories deeper than MaxDepth levels
	// below Root are never visited.
	MaxDepth int

	// Filter is consulted for every candidate; may be nil.
	Filter *Filter
}

// Find walks the tree and returns discovered repositories in a stable
// breadth-first order, along with warnings for skipped directories.
// A fresh call re-walks from scratch.
//
// The returned error is non-nil only when Root itself is missing or
// unreadable; everything else is isolated into warnings.
func (l *Locator) Find() ([]Repo, []Warning, error) {
	info, err := os.Stat(l.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("starting directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("starting directory %s is not a directory", l.Root)
	}

	// The start itself being a repository short-circuits the walk.
	if isRepoRoot(l.Root) {
		root := Repo{Path: l.Root, Rel: ".", Depth: 0}
		if l.Filter.Excluded(root.Rel) || !l.Filter.Included(root.Rel) {
			return nil, nil, nil
		}
		return []Repo{root}, nil, nil
	}

	var (
		repos    []Repo
		warnings []Warning
	)

	type candidate struct {
		path  string
		rel   string
		depth int
	}
	var queue []candidate
	if l.MaxDepth >= 1 {
		queue = append(queue, candidate{path: l.Root, rel: ".", depth: 0})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(cur.path)
		if err != nil {
			if cur.depth == 0 {
				return nil, nil, fmt.Errorf("starting directory: %w", err)
			}
			warnings = append(warnings, Warning{Path: cur.path, Err: err})
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			child := candidate{
				path:  filepath.Join(cur.path, entry.Name()),
				rel:   relJoin(cur.rel, entry.Name()),
				depth: cur.depth + 1,
			}
			if l.Filter.Excluded(child.rel) {
				continue
			}
			if isRepoRoot(child.path) {
				// Prune at the marker: never descend into a repository.
				if l.Filter.Included(child.rel) {
					repos = append(repos, Repo{Path: child.path, Rel: child.rel, Depth: child.depth})
				}
				continue
			}
			if child.depth < l.MaxDepth {
				queue = append(queue, child)
			}
		}
	}

	return repos, warnings, nil
}

// relJoin extends a relative path, avoiding the "./x" form for top-level names.
func relJoin(base, name string) string {
	if base == "." {
		return name
	}
	return base + string(filepath.Separator) + name
}

// isRepoRoot checks whether path contains a .git marker.
// The marker can be a directory (regular repository) or a file (worktree,
// submodule); both mark a repository root for dispatch purposes.
func isRepoRoot(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}
