package dependency

// MergeRepeats collapses repeated mentions of the same name into one
// dependency per name, in order of first appearance.
//
// Within a group the merged necessity is required if any entry is required,
// else recommended if any is recommended, else optional. The merged
// temporality is build-only when every entry is build-only, run-only when
// every entry is run-only, and both otherwise. Option tags and option names
// are unioned in first-seen order. Variant, tap, environment effect and
// resolved spec come from the first entry. Inputs are never mutated.
func MergeRepeats(deps []*Dependency) []*Dependency {
	if len(deps) == 0 {
		return nil
	}

	var order []string
	groups := make(map[string][]*Dependency)
	for _, d := range deps {
		if _, seen := groups[d.name]; !seen {
			order = append(order, d.name)
		}
		groups[d.name] = append(groups[d.name], d)
	}

	out := make([]*Dependency, 0, len(order))
	for _, name := range order {
		out = append(out, mergeGroup(groups[name]))
	}
	return out
}

func mergeGroup(group []*Dependency) *Dependency {
	merged := group[0].clone()

	tags := Tags{}
	tags = append(tags, mergeNecessity(group)...)
	tags = append(tags, mergeTemporality(group)...)
	var names []string
	for _, d := range group {
		for _, t := range d.tags.OptionTags() {
			tags = tags.add(t)
		}
		names = append(names, d.optionNames...)
	}

	merged.tags = tags
	merged.optionNames = uniqueStrings(names)
	return merged
}

func mergeNecessity(group []*Dependency) Tags {
	recommended := false
	for _, d := range group {
		if d.IsRequired() {
			return nil
		}
		recommended = recommended || d.IsRecommended()
	}
	if recommended {
		return Tags{TagRecommended}
	}
	return Tags{TagOptional}
}

func mergeTemporality(group []*Dependency) Tags {
	build, run := true, true
	for _, d := range group {
		build = build && d.IsBuild()
		run = run && d.IsRun()
	}
	switch {
	case build:
		return Tags{TagBuild}
	case run:
		return Tags{TagRun}
	}
	return nil
}
