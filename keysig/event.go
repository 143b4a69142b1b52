package keysig

import (
	"fmt"
)

// MaxAccidentals is the largest number of sharps or flats in a key signature.
const MaxAccidentals = 7

// Event describes a key signature: the number of accidentals (sharps > 0,
// flats < 0), the number of naturals cancelling the previous key, or a
// reference to a custom key signature.
//
// The zero value is C major. Events are values and may be compared with Equal.
type Event struct {
	accidentals int
	naturals    int
	customIdx   int
	custom      bool
	invalid     bool
}

// NewEvent creates an event for a key with accidentals sharps or flats,
// cancelling naturals sharps or flats of the previous key.
// Counts are not checked, see Validate.
func NewEvent(accidentals, naturals int) Event {
	return Event{accidentals: accidentals, naturals: naturals}
}

// UnregisteredCustom is the index of a custom key signature which is not part
// of a document's registry.
const UnregisteredCustom = -1

// CustomEvent creates an event referencing custom key signature idx.
func CustomEvent(idx int) Event {
	return Event{customIdx: idx, custom: true}
}

// InvalidEvent creates an event which does not denote any key. Readers start
// from an invalid event until they find key information.
func InvalidEvent() Event {
	return Event{invalid: true}
}

// FromSubtype decodes the packed integer of legacy markup: bits 0–3 hold the
// signed accidental count, bits 4–7 the signed natural count, bits 8–23 the
// custom index, bit 24 flags a custom key and bit 25 an invalid one.
func FromSubtype(st int) Event {
	return Event{
		accidentals: signExtend4(st),
		naturals:    signExtend4(st >> 4),
		customIdx:   (st >> 8) & 0xffff,
		custom:      st&(1<<24) != 0,
		invalid:     st&(1<<25) != 0,
	}
}

func signExtend4(v int) int {
	return int(int8(uint8(v&0xf)<<4) >> 4)
}

// Subtype packs e into the legacy integer representation, the inverse of FromSubtype.
func (e Event) Subtype() int {
	st := e.accidentals&0xf | (e.naturals&0xf)<<4 | (e.customIdx&0xffff)<<8
	if e.custom {
		st |= 1 << 24
	}
	if e.invalid {
		st |= 1 << 25
	}
	return st
}

// Accidentals is the number of sharps (> 0) or flats (< 0).
func (e Event) Accidentals() int {
	return e.accidentals
}

// Naturals is the number of sharps (> 0) or flats (< 0) of the previous key
// which need cancellation.
func (e Event) Naturals() int {
	return e.naturals
}

// Custom is true for events referencing a custom key signature.
func (e Event) Custom() bool {
	return e.custom
}

// CustomIndex is the registry index of a custom key signature.
func (e Event) CustomIndex() int {
	return e.customIdx
}

// Invalid is true if e does not denote a key.
func (e Event) Invalid() bool {
	return e.invalid
}

// WithAccidentals returns a valid, non-custom copy of e with a new accidental count.
func (e Event) WithAccidentals(n int) Event {
	e.accidentals = n
	e.custom = false
	e.customIdx = 0
	e.invalid = false
	return e
}

// WithNaturals returns a copy of e with a new natural count.
func (e Event) WithNaturals(n int) Event {
	e.naturals = n
	return e
}

// WithCustom returns a custom event for registry index idx. Custom events carry
// no counts.
func (e Event) WithCustom(idx int) Event {
	return CustomEvent(idx)
}

// Clamped returns a copy of e with both counts limited to [-7,7].
func (e Event) Clamped() Event {
	e.accidentals = clamp(e.accidentals)
	e.naturals = clamp(e.naturals)
	return e
}

func clamp(n int) int {
	if n > MaxAccidentals {
		tracer().Debugf("clamping key signature count %d", n)
		return MaxAccidentals
	}
	if n < -MaxAccidentals {
		tracer().Debugf("clamping key signature count %d", n)
		return -MaxAccidentals
	}
	return n
}

// Validate checks the invariants of e.
func (e Event) Validate() error {
	if e.invalid {
		return fmt.Errorf("key signature event is invalid")
	}
	if e.custom {
		if e.accidentals != 0 || e.naturals != 0 {
			return fmt.Errorf("custom key signature must not carry counts (%d, %d)", e.accidentals, e.naturals)
		}
		if e.customIdx < UnregisteredCustom {
			return fmt.Errorf("custom key signature index %d is negative", e.customIdx)
		}
		return nil
	}
	if !validCount(e.accidentals) {
		return fmt.Errorf("accidentals %d: %w", e.accidentals, ErrInvalidCount)
	}
	if !validCount(e.naturals) {
		return fmt.Errorf("naturals %d: %w", e.naturals, ErrInvalidCount)
	}
	return nil
}

// Equal reports whether e and o denote the same key signature.
// Invalid events are never equal, not even to themselves. A custom event is
// never equal to a non-custom one; custom events compare by registry index.
// Unregistered custom events are never equal, their identity is their symbols.
func (e Event) Equal(o Event) bool {
	if e.invalid || o.invalid || e.custom != o.custom {
		return false
	}
	if e.custom {
		return e.customIdx > UnregisteredCustom && e.customIdx == o.customIdx
	}
	return e.accidentals == o.accidentals && e.naturals == o.naturals
}

func (e Event) String() string {
	switch {
	case e.invalid:
		return "<invalid>"
	case e.custom:
		return fmt.Sprintf("custom#%d", e.customIdx)
	case e.naturals != 0:
		return fmt.Sprintf("%s (cancel %s)", countString(e.accidentals), countString(e.naturals))
	}
	return countString(e.accidentals)
}

func countString(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("%d♯", n)
	case n < 0:
		return fmt.Sprintf("%d♭", -n)
	}
	return "0"
}

// validCount is true for counts in [-7,7].
func validCount(n int) bool {
	return n >= -MaxAccidentals && n <= MaxAccidentals
}

// abs must only be called for valid counts.
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
