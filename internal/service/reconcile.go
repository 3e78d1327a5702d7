package service

import "sort"

// TagChanges is the outcome of reconciling a blog's linked tags
// against a desired set.
type TagChanges struct {
	ToAdd    []int64
	ToRemove []int64
}

// Empty reports whether the reconciliation requires no link changes.
func (c TagChanges) Empty() bool {
	return len(c.ToAdd) == 0 && len(c.ToRemove) == 0
}

// ReconcileTags computes the set difference between the tags currently
// linked to a blog and the desired set: ToAdd holds desired IDs not
// currently linked, ToRemove holds linked IDs no longer desired.
// Duplicates in either input are ignored; both outputs are sorted
// ascending. Reconciling a set against itself yields no changes.
func ReconcileTags(current, desired []int64) TagChanges {
	currentSet := make(map[int64]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	var changes TagChanges
	for id := range desiredSet {
		if _, ok := currentSet[id]; !ok {
			changes.ToAdd = append(changes.ToAdd, id)
		}
	}
	for id := range currentSet {
		if _, ok := desiredSet[id]; !ok {
			changes.ToRemove = append(changes.ToRemove, id)
		}
	}

	sort.Slice(changes.ToAdd, func(i, j int) bool { return changes.ToAdd[i] < changes.ToAdd[j] })
	sort.Slice(changes.ToRemove, func(i, j int) bool { return changes.ToRemove[i] < changes.ToRemove[j] })

	return changes
}
