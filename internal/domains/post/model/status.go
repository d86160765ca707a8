package model

import (
	"slices"
)

// Status is the publication state of a post.
type Status string

const (
	StatusPublish Status = "publish"
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusPrivate Status = "private"
	StatusFuture  Status = "future"
	StatusTrash   Status = "trash"
)

// Priority is the display order of statuses. It is a ranking, not alphabetic.
var Priority = []Status{
	StatusPublish,
	StatusDraft,
	StatusPending,
	StatusPrivate,
	StatusFuture,
	StatusTrash,
}

// Rank returns the position of s in Priority, or -1 when s is unknown.
func (s Status) Rank() int {
	return slices.Index(Priority, s)
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s.Rank() >= 0
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo applies the editor workflow: a trashed post can only be
// restored to draft, every other move is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.IsValid() {
		return false
	}
	if s == StatusTrash {
		return next == StatusTrash || next == StatusDraft
	}
	return true
}

// StatusCount is one row of the per-status aggregate.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// sortKey ranks unknown statuses after all known ones.
func sortKey(s Status) int {
	if r := s.Rank(); r >= 0 {
		return r
	}
	return len(Priority)
}

// SortByPriority returns a copy of rows ordered by ascending Priority position.
// The sort is stable: rows with equal rank (duplicates, unknown statuses) keep
// their input order.
func SortByPriority(rows []StatusCount) []StatusCount {
	sorted := make([]StatusCount, len(rows))
	copy(sorted, rows)

	slices.SortStableFunc(sorted, func(a, b StatusCount) int {
		return sortKey(a.Status) - sortKey(b.Status)
	})
	return sorted
}

// TotalCount sums the count column.
func TotalCount(rows []StatusCount) int {
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	return total
}
