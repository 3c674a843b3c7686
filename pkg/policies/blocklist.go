package policies

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// ErrLookup wraps failures of a Blocklist lookup.
var ErrLookup = errors.New("policies.lookup_failed")

// Blocklist answers membership questions for a static rule table.
// Implementations may perform I/O; an error means membership is unknown.
type Blocklist interface {
	Contains(ctx context.Context, value string) (bool, error)
}

// Normalizer canonicalises values before they are stored or looked up.
type Normalizer func(string) string

// NormalizeID trims surrounding whitespace.
func NormalizeID(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail trims whitespace and applies Unicode case folding.
func NormalizeEmail(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Set is an in-memory Blocklist. It is safe for concurrent use and can be
// updated at runtime without touching the policies that read it.
type Set struct {
	mu        sync.RWMutex
	values    map[string]struct{}
	normalize Normalizer
}

// NewSet returns a set of identifiers compared after trimming whitespace.
func NewSet(values ...string) *Set {
	return NewSetWith(NormalizeID, values...)
}

// NewEmailSet returns a set of email addresses compared case-insensitively.
func NewEmailSet(emails ...string) *Set {
	return NewSetWith(NormalizeEmail, emails...)
}

// NewSetWith returns a set using normalize for stored and queried values.
func NewSetWith(normalize Normalizer, values ...string) *Set {
	if normalize == nil {
		normalize = NormalizeID
	}
	s := &Set{values: make(map[string]struct{}, len(values)), normalize: normalize}
	s.Add(values...)
	return s
}

// Contains reports whether value is in the set. It never fails.
func (s *Set) Contains(_ context.Context, value string) (bool, error) {
	value = s.normalize(value)
	if value == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.values[value]
	return ok, nil
}

// Add inserts values. Blank values are ignored.
func (s *Set) Add(values ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range values {
		if v = s.normalize(v); v != "" {
			s.values[v] = struct{}{}
		}
	}
}

// Remove deletes values.
func (s *Set) Remove(values ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range values {
		delete(s.values, s.normalize(v))
	}
}

// Replace swaps the whole content of the set atomically.
func (s *Set) Replace(values ...string) {
	next := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = s.normalize(v); v != "" {
			next[v] = struct{}{}
		}
	}

	s.mu.Lock()
	s.values = next
	s.mu.Unlock()
}

// Len returns the number of entries.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}

// rule denies with reason when a value is found in list.
type rule struct {
	list   Blocklist
	reason string
}

// match returns the reason of the first rule whose list contains value.
// Nil lists are skipped.
func match(ctx context.Context, value string, rules ...rule) (string, bool, error) {
	for _, r := range rules {
		if r.list == nil {
			continue
		}
		found, err := r.list.Contains(ctx, value)
		if err != nil {
			return "", false, errors.Join(ErrLookup, err)
		}
		if found {
			return r.reason, true, nil
		}
	}
	return "", false, nil
}
