// Package selection tracks which label ids are checked and enforces the
// maximum number of concurrent selections.
package selection

import (
	"encoding/json"
	"fmt"
	"math"
)

// Unbounded is the default cap
const Unbounded = math.MaxInt

// Decision is the outcome of a toggle
type Decision int

const (
	// Ignored means nothing changed (uncheck of an id that was not checked).
	Ignored Decision = iota
	// Checked means the id was added to the checked set.
	Checked
	// Unchecked means the id was removed from the checked set.
	Unchecked
	// Rejected means the check would exceed the cap; the caller must revert
	// the visual state.
	Rejected
)

// String returns a readable name for the decision
func (d Decision) String() string {
	switch d {
	case Ignored:
		return "ignored"
	case Checked:
		return "checked"
	case Unchecked:
		return "unchecked"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Accepted reports whether the decision changed the ledger
func (d Decision) Accepted() bool {
	return d == Checked || d == Unchecked
}

// Ledger is the set of checked ids plus the cap. Only checked ids are stored.
// It is not safe for concurrent use; the owning container serialises access.
type Ledger struct {
	checked  map[string]struct{}
	order    []string
	maxCount int
}

// New creates an empty ledger with no cap
func New() *Ledger {
	return &Ledger{
		checked:  make(map[string]struct{}),
		order:    make([]string, 0),
		maxCount: Unbounded,
	}
}

// SetMaxCount sets the cap. Existing selections are kept even when the new
// cap is below the current count.
func (l *Ledger) SetMaxCount(n int) {
	l.maxCount = n
}

// MaxCount returns the cap
func (l *Ledger) MaxCount() int {
	return l.maxCount
}

// OnToggle records a check or uncheck attempt for id
func (l *Ledger) OnToggle(id string, checked bool) Decision {
	if checked {
		if _, ok := l.checked[id]; ok {
			return Ignored
		}
		if len(l.checked) >= l.maxCount {
			return Rejected
		}
		l.checked[id] = struct{}{}
		l.order = append(l.order, id)
		return Checked
	}

	if _, ok := l.checked[id]; !ok {
		return Ignored
	}
	delete(l.checked, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return Unchecked
}

// Count returns the number of checked ids
func (l *Ledger) Count() int {
	return len(l.checked)
}

// IsChecked reports whether id is checked
func (l *Ledger) IsChecked(id string) bool {
	_, ok := l.checked[id]
	return ok
}

// CheckedIDs returns the checked ids in the order they were checked
func (l *Ledger) CheckedIDs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// CheckedIDsJSON returns the checked ids as a JSON array of strings
func (l *Ledger) CheckedIDsJSON() (string, error) {
	data, err := json.Marshal(l.CheckedIDs())
	if err != nil {
		return "", fmt.Errorf("failed to encode checked ids: %w", err)
	}
	return string(data), nil
}

// Reset clears every checked id. The cap is kept.
func (l *Ledger) Reset() {
	clear(l.checked)
	l.order = l.order[:0]
}
