package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeListOptions(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "zero limit uses default", limit: 0, offset: 0, wantLimit: DefaultLimit, wantOffset: 0},
		{name: "negative limit uses default", limit: -5, offset: 0, wantLimit: DefaultLimit, wantOffset: 0},
		{name: "limit above max is clamped", limit: 5000, offset: 0, wantLimit: MaxLimit, wantOffset: 0},
		{name: "negative offset becomes zero", limit: 20, offset: -3, wantLimit: 20, wantOffset: 0},
		{name: "valid values pass through", limit: 25, offset: 50, wantLimit: 25, wantOffset: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := normalizeListOptions(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, opts.Limit)
			assert.Equal(t, tt.wantOffset, opts.Offset)
		})
	}
}
