package keysig

import (
	"github.com/npillmayer/scorelayout/clef"
	"github.com/npillmayer/scorelayout/geom"
	"github.com/npillmayer/scorelayout/sym"
)

// KeySym is one symbol of a key signature.
type KeySym struct {
	Sym  sym.ID
	SPos geom.Point // nominal position in staff spaces
	Pos  geom.Point // resolved position in pixels
}

// Context carries everything Layout needs to know about the staff.
type Context struct {
	Clef     clef.Lines  // staff positions for the active clef
	TabStaff bool        // tablature staves have no key signatures
	Spatium  float64     // pixels per staff space
	Mag      float64     // magnification; 0 means 1
	Metrics  sym.Metrics // symbol boxes; nil means sym.StaticMetrics
}

// masks has, for every count 0…7, the bits of the clef table slots involved.
var masks = [MaxAccidentals + 1]int{0x00, 0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3f, 0x7f}

// placement lists the clef table slots in the order symbols are inserted, for
// sharps and for flats. A key with n accidentals uses the last n entries.
// The x-offset of a symbol is its slot modulo 7.
var placement = [2][MaxAccidentals]int{
	{6, 5, 4, 3, 2, 1, 0},
	{13, 12, 11, 10, 9, 8, 7},
}

// mask expands a count into a bit set of clef table slots. Counts outside
// [-7,7] are logged and yield an empty mask.
func mask(n int, limb string, ev Event) int {
	if !validCount(n) {
		tracer().Errorf("illegal %s count %d in key %v", limb, n, ev)
		return 0
	}
	return masks[abs(n)]
}

// Layout computes the symbols of a key signature and their bounding box.
//
// For custom events the symbols are taken from custom, only positions and the
// bounding box are computed. Otherwise naturals are placed first, followed by
// the sharps or flats of the key. Naturals for accidentals on the same side
// (sharps/flats) as the new key are suppressed, as the new accidentals replace
// them. Naturals are only placed if showNaturals is set.
//
// Layout never fails: invalid counts are logged and produce no symbols for the
// offending part of the key. The result is a freshly allocated slice.
func Layout(ev Event, custom []KeySym, showNaturals bool, ctx Context) ([]KeySym, geom.Rect) {
	if ctx.TabStaff {
		return nil, geom.Rect{}
	}
	if ev.Custom() {
		syms := make([]KeySym, len(custom))
		copy(syms, custom)
		return syms, resolve(syms, ctx)
	}
	t1, t2 := ev.Accidentals(), ev.Naturals()
	accidentals := mask(t1, "accidental", ev)
	naturals := mask(t2, "natural", ev)
	coffset := 0
	if t2 < 0 {
		coffset = 7
	}
	if (t1 > 0) == (t2 > 0) {
		naturals &^= accidentals
	}
	syms := make([]KeySym, 0, 14)
	add := func(id sym.ID, x float64, line int) {
		syms = append(syms, KeySym{Sym: id, SPos: geom.Pt(x, float64(line)*0.5)})
	}
	xo := 0.0
	if showNaturals {
		for i := 0; i < 7; i++ {
			if naturals&(1<<i) != 0 {
				add(sym.NaturalSym, xo, ctx.Clef[i+coffset])
				xo += 1.0
			}
		}
	}
	if accidentals != 0 {
		n := abs(t1)
		side, id := 0, sym.SharpSym
		if t1 < 0 {
			side, id = 1, sym.FlatSym
		}
		for _, slot := range placement[side][MaxAccidentals-n:] {
			add(id, xo+float64(slot%7), ctx.Clef[slot])
		}
	}
	tracer().Debugf("key %v: %d symbols", ev, len(syms))
	return syms, resolve(syms, ctx)
}

// resolve scales nominal positions to pixels and returns the union of all
// symbol boxes.
func resolve(syms []KeySym, ctx Context) geom.Rect {
	metrics := ctx.Metrics
	if metrics == nil {
		metrics = sym.StaticMetrics{}
	}
	mag := ctx.Mag
	if mag == 0 {
		mag = 1
	}
	var bbox geom.Rect
	for i := range syms {
		syms[i].Pos = syms[i].SPos.Scale(ctx.Spatium)
		box := metrics.BBox(syms[i].Sym, mag).Scale(ctx.Spatium)
		bbox = bbox.Union(box.Translate(syms[i].Pos))
	}
	return bbox
}
