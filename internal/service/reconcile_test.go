package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileTags(t *testing.T) {
	tests := []struct {
		name         string
		current      []int64
		desired      []int64
		wantToAdd    []int64
		wantToRemove []int64
	}{
		{
			name:         "disjoint overlap",
			current:      []int64{1, 2},
			desired:      []int64{2, 3},
			wantToAdd:    []int64{3},
			wantToRemove: []int64{1},
		},
		{
			name:    "identical sets",
			current: []int64{1, 2, 3},
			desired: []int64{1, 2, 3},
		},
		{
			name:    "identical sets different order",
			current: []int64{3, 1, 2},
			desired: []int64{2, 3, 1},
		},
		{
			name:      "from empty",
			current:   nil,
			desired:   []int64{5, 7},
			wantToAdd: []int64{5, 7},
		},
		{
			name:         "to empty clears everything",
			current:      []int64{5, 7},
			desired:      nil,
			wantToRemove: []int64{5, 7},
		},
		{
			name:      "duplicate desired IDs are collapsed",
			current:   []int64{1},
			desired:   []int64{1, 2, 2, 2},
			wantToAdd: []int64{2},
		},
		{
			name:         "results are sorted ascending",
			current:      []int64{9, 4},
			desired:      []int64{8, 3},
			wantToAdd:    []int64{3, 8},
			wantToRemove: []int64{4, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := ReconcileTags(tt.current, tt.desired)
			assert.Equal(t, tt.wantToAdd, changes.ToAdd)
			assert.Equal(t, tt.wantToRemove, changes.ToRemove)
		})
	}
}

func TestReconcileTagsIdempotent(t *testing.T) {
	// Applying the computed changes yields a state where a second
	// reconcile is a no-op.
	changes := ReconcileTags([]int64{1, 2}, []int64{2, 3})
	assert.False(t, changes.Empty())

	again := ReconcileTags([]int64{2, 3}, []int64{2, 3})
	assert.True(t, again.Empty())
}
