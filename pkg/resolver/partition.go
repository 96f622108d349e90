// Package resolver turns a flat list of discovered files into template units:
// each specification file governs the content files below it that have no
// nearer specification file.
package resolver

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// IsSpecFile reports whether the base name of path is one of names
func IsSpecFile(path string, names []string) bool {
	base := filepath.Base(path)
	for _, n := range names {
		if base == n {
			return true
		}
	}
	return false
}

// Partition assigns every content file to the specification file whose
// directory is its nearest ancestor. Units come back ordered by spec depth,
// then path. Every content file ends up in exactly one unit or the call fails.
func Partition(files []string, names []string) ([]types.TemplateUnit, error) {
	var specs, content []string
	for _, f := range files {
		if IsSpecFile(f, names) {
			specs = append(specs, f)
		} else {
			content = append(content, f)
		}
	}

	if len(specs) == 0 {
		return nil, errors.New(errors.ErrNotFound, "no specification found").
			WithDetail("names", names).
			WithAdvice("add a creatorly.yml file to the template root")
	}

	sortByDepth(specs)
	sortByDepth(content)

	units := make([]types.TemplateUnit, len(specs))
	for i, s := range specs {
		units[i] = types.TemplateUnit{RootPath: filepath.Dir(s), SpecPath: s}
	}

	var orphans []string
	for _, f := range content {
		idx := nearestUnit(units, f)
		if idx < 0 {
			orphans = append(orphans, f)
			continue
		}
		units[idx].Files = append(units[idx].Files, f)
	}

	if len(orphans) > 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no specification found for %d file(s): %s",
			len(orphans), strings.Join(orphans, ", ")).
			WithDetail("files", orphans)
	}
	return units, nil
}

// nearestUnit returns the index of the unit whose root is the longest
// ancestor of file, or -1
func nearestUnit(units []types.TemplateUnit, file string) int {
	best, bestLen := -1, -1
	for i, u := range units {
		if isUnder(file, u.RootPath) && len(u.RootPath) > bestLen {
			best, bestLen = i, len(u.RootPath)
		}
	}
	return best
}

// isUnder reports whether path lies inside dir. The separator is part of the
// prefix so "/a/bc" is not under "/a/b".
func isUnder(path, dir string) bool {
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

func depth(path string) int {
	return strings.Count(filepath.ToSlash(filepath.Clean(path)), "/")
}

func sortByDepth(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		di, dj := depth(paths[i]), depth(paths[j])
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})
}
