/*
Package score is a minimal score document hosting key signature elements.

A Score consists of staves. Each staff has a map of clefs and a map of key
signature elements, both indexed by tick. The score owns the registry of custom
key signatures and an undo stack. Changes made through the undo stack may be
grouped into macros, which are undone and redone as a whole.

	sc := score.New(config.Default(), sym.StaticMetrics{})
	st := sc.AddStaff("Violin", clef.G)
	ks, _ := sc.AddKeySig(st, 0, keysig.NewEvent(2, 0))
	sc.Layout()

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package score

import (
	"errors"
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/scorelayout/clef"
	"github.com/npillmayer/scorelayout/config"
	"github.com/npillmayer/scorelayout/keysig"
	"github.com/npillmayer/scorelayout/sym"
)

// tracer traces with key 'scorelayout.score'
func tracer() tracing.Trace {
	return tracing.Select("scorelayout.score")
}

// ErrUnknownStaff is returned for staves which are not part of a score.
var ErrUnknownStaff = errors.New("staff is not part of this score")

// Score is a document of staves. It implements keysig.Document.
type Score struct {
	style     config.Style
	metrics   sym.Metrics
	staves    []*Staff
	custom    []customEntry
	layoutAll bool
	undo      undoStack
}

type customEntry struct {
	name string
	ks   *keysig.KeySig
}

var _ keysig.Document = (*Score)(nil)

// New creates an empty score. If metrics is nil, the built-in symbol table is used.
func New(style config.Style, metrics sym.Metrics) *Score {
	if metrics == nil {
		metrics = sym.StaticMetrics{}
	}
	return &Score{style: style, metrics: metrics}
}

// Style returns the layout style.
func (s *Score) Style() config.Style {
	return s.style
}

// SetStyle replaces the layout style and flags the score for re-layout.
func (s *Score) SetStyle(st config.Style) {
	s.style = st
	s.layoutAll = true
}

// Metrics returns the symbol metrics used for layout.
func (s *Score) Metrics() sym.Metrics {
	return s.metrics
}

// SetLayoutAll flags the score for a complete re-layout.
func (s *Score) SetLayoutAll(all bool) {
	s.layoutAll = all
}

// LayoutAll tells whether the score needs a complete re-layout.
func (s *Score) LayoutAll() bool {
	return s.layoutAll
}

// AddStaff appends a staff starting with clef c.
func (s *Score) AddStaff(name string, c clef.Type) *Staff {
	st := &Staff{
		name:  name,
		mag:   1,
		clefs: []clefEntry{{tick: 0, clef: c}},
		keys:  make(map[int]*keysig.KeySig),
	}
	s.staves = append(s.staves, st)
	s.layoutAll = true
	tracer().Debugf("added staff %q with clef %v", name, c)
	return st
}

// Staves returns all staves, top to bottom.
func (s *Score) Staves() []keysig.Staff {
	staves := make([]keysig.Staff, len(s.staves))
	for i, st := range s.staves {
		staves[i] = st
	}
	return staves
}

// Staff returns staff number i, or nil.
func (s *Score) Staff(i int) *Staff {
	if i < 0 || i >= len(s.staves) {
		return nil
	}
	return s.staves[i]
}

// StaffCount is the number of staves.
func (s *Score) StaffCount() int {
	return len(s.staves)
}

func (s *Score) findStaff(st keysig.Staff) (*Staff, error) {
	if staff, ok := st.(*Staff); ok {
		for _, own := range s.staves {
			if own == staff {
				return staff, nil
			}
		}
	}
	return nil, ErrUnknownStaff
}

// AddKeySig places a key signature on a staff without undo. An existing
// element at tick is replaced.
func (s *Score) AddKeySig(st *Staff, tick int, ev keysig.Event) (*keysig.KeySig, error) {
	if _, err := s.findStaff(st); err != nil {
		return nil, err
	}
	ks := keysig.New(s)
	ks.Attach(st, tick)
	ks.ChangeKeySigEvent(ev)
	st.keys[tick] = ks
	s.layoutAll = true
	return ks, nil
}

// Layout lays out every key signature of the score and clears the layout-all flag.
func (s *Score) Layout() {
	n := 0
	for _, st := range s.staves {
		for _, tick := range st.keyTicks() {
			st.keys[tick].Layout()
			n++
		}
	}
	s.layoutAll = false
	tracer().Debugf("laid out %d key signature(s) on %d staves", n, len(s.staves))
}

// --- Custom key signature registry -----------------------------------------

// CustomKeySig returns the registered custom key signature idx, or nil.
func (s *Score) CustomKeySig(idx int) *keysig.KeySig {
	if idx < 0 || idx >= len(s.custom) {
		return nil
	}
	return s.custom[idx].ks
}

// CustomKeySigIdx returns the registry index of ks, or -1.
func (s *Score) CustomKeySigIdx(ks *keysig.KeySig) int {
	for i, e := range s.custom {
		if e.ks == ks {
			return i
		}
	}
	return -1
}

// AddCustomKeySig registers ks and returns its index.
func (s *Score) AddCustomKeySig(ks *keysig.KeySig) int {
	return s.addCustom("", ks)
}

func (s *Score) addCustom(name string, ks *keysig.KeySig) int {
	ks.SetDocument(s)
	if ks.IsCustom() {
		ks.SetEvent(keysig.CustomEvent(len(s.custom)))
	}
	s.custom = append(s.custom, customEntry{name: name, ks: ks})
	tracer().Debugf("registered custom key signature %d %q", len(s.custom)-1, name)
	return len(s.custom) - 1
}

// CustomKeySigCount is the number of registered custom key signatures.
func (s *Score) CustomKeySigCount() int {
	return len(s.custom)
}

// --- Staff -----------------------------------------------------------------

// Staff is a single staff of a score. It implements keysig.Staff.
type Staff struct {
	name  string
	tab   bool
	mag   float64
	clefs []clefEntry // sorted by tick
	keys  map[int]*keysig.KeySig
}

type clefEntry struct {
	tick int
	clef clef.Type
}

var _ keysig.Staff = (*Staff)(nil)

// Name returns the instrument name of the staff.
func (st *Staff) Name() string {
	return st.name
}

// IsTabStaff is true for tablature staves.
func (st *Staff) IsTabStaff() bool {
	return st.tab
}

// SetTabStaff switches between tablature and standard notation.
func (st *Staff) SetTabStaff(tab bool) {
	st.tab = tab
}

// Mag is the magnification of the staff.
func (st *Staff) Mag() float64 {
	return st.mag
}

// SetMag sets the magnification of the staff. Values <= 0 are ignored.
func (st *Staff) SetMag(mag float64) {
	if mag > 0 {
		st.mag = mag
	}
}

// SetClef places a clef change at tick.
func (st *Staff) SetClef(tick int, c clef.Type) {
	i := sort.Search(len(st.clefs), func(i int) bool { return st.clefs[i].tick >= tick })
	if i < len(st.clefs) && st.clefs[i].tick == tick {
		st.clefs[i].clef = c
		return
	}
	st.clefs = append(st.clefs, clefEntry{})
	copy(st.clefs[i+1:], st.clefs[i:])
	st.clefs[i] = clefEntry{tick: tick, clef: c}
}

// ClefAt returns the clef in effect at tick, i.e. the latest clef change at or
// before tick. Before the first clef change a treble clef is assumed.
func (st *Staff) ClefAt(tick int) clef.Type {
	i := sort.Search(len(st.clefs), func(i int) bool { return st.clefs[i].tick > tick })
	if i == 0 {
		return clef.G
	}
	return st.clefs[i-1].clef
}

// KeySigAt returns the key signature element at exactly tick, or nil.
func (st *Staff) KeySigAt(tick int) *keysig.KeySig {
	return st.keys[tick]
}

// KeyAt returns the key in effect at tick. Before the first key signature the
// staff is in C major.
func (st *Staff) KeyAt(tick int) keysig.Event {
	var ev keysig.Event
	for _, t := range st.keyTicks() {
		if t > tick {
			break
		}
		ev = st.keys[t].Event()
	}
	return ev
}

// KeySigs returns the key signature elements of the staff, ordered by tick.
func (st *Staff) KeySigs() []*keysig.KeySig {
	ticks := st.keyTicks()
	list := make([]*keysig.KeySig, len(ticks))
	for i, t := range ticks {
		list[i] = st.keys[t]
	}
	return list
}

func (st *Staff) keyTicks() []int {
	ticks := make([]int, 0, len(st.keys))
	for t := range st.keys {
		ticks = append(ticks, t)
	}
	sort.Ints(ticks)
	return ticks
}
