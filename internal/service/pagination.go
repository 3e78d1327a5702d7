package service

import "github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"

// Pagination defaults and bounds.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// normalizeListOptions applies the pagination defaults: limit falls
// back to DefaultLimit when unset, is clamped to [1, MaxLimit], and a
// negative offset becomes 0.
func normalizeListOptions(limit, offset int) repository.ListOptions {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.ListOptions{Limit: limit, Offset: offset}
}
