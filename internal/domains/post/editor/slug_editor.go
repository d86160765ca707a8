// Package editor holds the slug rules of the post editor: the one-shot
// derivation from the title and the debounced normalization of the slug.
package editor

import (
	"sync"
	"time"

	"dashboard-backend/internal/shared/debounce"
	"dashboard-backend/internal/shared/utils"
)

// DefaultQuietPeriod is how long a slug must stay unchanged before it is normalized.
const DefaultQuietPeriod = 1000 * time.Millisecond

const slugField = "slug"

// SlugState tracks where the current slug came from.
type SlugState int

const (
	// SlugEmpty: no slug yet, the next title change populates it.
	SlugEmpty SlugState = iota
	// SlugAuto: derived from the title once, no longer follows it.
	SlugAuto
	// SlugManual: typed by the user.
	SlugManual
)

func (s SlugState) String() string {
	switch s {
	case SlugEmpty:
		return "empty"
	case SlugAuto:
		return "auto"
	case SlugManual:
		return "manual"
	}
	return "unknown"
}

// Derive is the stateless form of the editor rule used when a post is saved.
func Derive(title, slug string) string {
	if slug == "" {
		return utils.GenerateSlug(title)
	}
	return utils.GenerateSlug(slug)
}

// Option configures a SlugEditor.
type Option func(*SlugEditor)

// WithQuietPeriod overrides DefaultQuietPeriod.
func WithQuietPeriod(d time.Duration) Option {
	return func(e *SlugEditor) {
		e.quiet = d
	}
}

// WithOnNormalize registers a callback invoked with the slug after each
// debounced normalization pass.
func WithOnNormalize(fn func(slug string)) Option {
	return func(e *SlugEditor) {
		e.onNormalize = fn
	}
}

// SlugEditor is one editing session of a post's title and slug.
// It is safe for concurrent use.
type SlugEditor struct {
	mu          sync.Mutex
	title       string
	slug        string
	state       SlugState
	quiet       time.Duration
	onNormalize func(string)
	debouncer   *debounce.Debouncer
}

// NewSlugEditor creates a closed-over session; call Mount before editing.
func NewSlugEditor(opts ...Option) *SlugEditor {
	e := &SlugEditor{quiet: DefaultQuietPeriod}
	for _, opt := range opts {
		opt(e)
	}
	e.debouncer = debounce.New(e.quiet)
	return e
}

// Mount loads the stored values. An empty slug is derived from the title.
// A non-empty slug, stored or derived, gets a normalization pass like any edit.
func (e *SlugEditor) Mount(title, slug string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.title = title
	e.slug = slug
	e.state = SlugManual
	if slug == "" {
		e.state = SlugEmpty
	}
	e.deriveIfEmpty()
	e.scheduleNormalize()
}

// SetTitle records a title edit. It only affects the slug while the slug is empty.
func (e *SlugEditor) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.title = title
	if e.deriveIfEmpty() {
		e.scheduleNormalize()
	}
}

// SetSlug records a slug edit and schedules its normalization. Clearing the
// slug drops the pending pass for the old value and re-derives it from the
// title; the derived slug gets its own pass.
func (e *SlugEditor) SetSlug(slug string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.slug = slug

	if slug == "" {
		e.state = SlugEmpty
		e.debouncer.Cancel(slugField)
		if e.deriveIfEmpty() {
			e.scheduleNormalize()
		}
		return
	}

	e.state = SlugManual
	e.scheduleNormalize()
}

// Slug returns the current slug.
func (e *SlugEditor) Slug() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slug
}

// Title returns the current title.
func (e *SlugEditor) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title
}

// State returns the current SlugState.
func (e *SlugEditor) State() SlugState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Pending reports whether a normalization pass is scheduled.
func (e *SlugEditor) Pending() bool {
	return e.debouncer.Pending(slugField)
}

// Close ends the session; no pass fires afterwards.
func (e *SlugEditor) Close() {
	e.debouncer.Stop()
}

// deriveIfEmpty fills an empty slug from the title and reports whether it did.
// Must be called with mu held.
func (e *SlugEditor) deriveIfEmpty() bool {
	if e.slug != "" {
		return false
	}
	e.slug = utils.GenerateSlug(e.title)
	if e.slug == "" {
		return false
	}
	e.state = SlugAuto
	return true
}

// scheduleNormalize replaces any pending pass. Must be called with mu held.
func (e *SlugEditor) scheduleNormalize() {
	if e.slug != "" {
		e.debouncer.Do(slugField, e.normalize)
	}
}

func (e *SlugEditor) normalize() {
	e.mu.Lock()
	e.slug = utils.GenerateSlug(e.slug)
	if e.slug == "" {
		e.state = SlugEmpty
		e.deriveIfEmpty()
	}
	slug, cb := e.slug, e.onNormalize
	e.mu.Unlock()

	if cb != nil {
		cb(slug)
	}
}
