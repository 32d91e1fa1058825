package pipeline

import "github.com/vladshablinsky/brew/pkg/dependency"

// intersect keeps the dependencies that every list contains with the same
// name and tags, in the order of the first list.
func intersect(lists [][]*dependency.Dependency) []*dependency.Dependency {
	counts := make(map[string]int)
	for _, list := range lists {
		seen := make(map[string]bool, len(list))
		for _, d := range list {
			if k := d.Key(); !seen[k] {
				seen[k] = true
				counts[k]++
			}
		}
	}

	var out []*dependency.Dependency
	for _, d := range lists[0] {
		if counts[d.Key()] == len(lists) {
			out = append(out, d)
			counts[d.Key()] = 0
		}
	}
	return out
}

// union merges all lists into one dependency per name.
func union(lists [][]*dependency.Dependency) []*dependency.Dependency {
	var all []*dependency.Dependency
	for _, list := range lists {
		all = append(all, list...)
	}
	return dependency.MergeRepeats(all)
}
