package keysig

import (
	"image/color"
	"image/draw"

	"github.com/npillmayer/scorelayout/clef"
	"github.com/npillmayer/scorelayout/config"
	"github.com/npillmayer/scorelayout/geom"
	"github.com/npillmayer/scorelayout/sym"
)

// Staff is what a key signature needs to know about the staff it lives on.
type Staff interface {
	ClefAt(tick int) clef.Type
	IsTabStaff() bool
	Mag() float64
}

// Document is the score a key signature belongs to. It owns the registry of
// custom key signatures and the undo stack.
type Document interface {
	Style() config.Style
	Metrics() sym.Metrics
	Staves() []Staff
	SetLayoutAll(bool)
	// custom key signature registry
	CustomKeySig(idx int) *KeySig
	CustomKeySigIdx(ks *KeySig) int
	AddCustomKeySig(ks *KeySig) int
	// undoable changes
	BeginMacro(name string)
	EndMacro()
	UndoChangeKeySig(st Staff, tick int, ev Event)
	UndoChangeProperty(ks *KeySig, id PropertyID, v any)
}

// KeySig is the key signature element.
//
// Its symbol list is owned by the element and rebuilt by every call to Layout.
type KeySig struct {
	doc          Document
	staff        Staff
	tick         int
	event        Event
	symbols      []KeySym
	stash        []KeySym // unregistered custom symbols while on a tablature staff
	bbox         geom.Rect
	showCourtesy bool
	showNaturals bool
	visible      bool
	generated    bool
}

// New creates a key signature in C major for a document. doc may be nil for
// elements living outside of a score, e.g. in a palette.
func New(doc Document) *KeySig {
	return &KeySig{
		doc:          doc,
		showCourtesy: true,
		showNaturals: true,
		visible:      true,
	}
}

// Clone creates a deep copy of ks, detached from its staff.
func (ks *KeySig) Clone() *KeySig {
	c := *ks
	c.symbols = append([]KeySym(nil), ks.symbols...)
	c.stash = append([]KeySym(nil), ks.stash...)
	c.staff = nil
	c.tick = 0
	return &c
}

// Document returns the owning document, which may be nil.
func (ks *KeySig) Document() Document {
	return ks.doc
}

// SetDocument hands ks over to a document.
func (ks *KeySig) SetDocument(doc Document) {
	ks.doc = doc
}

// Attach places ks on a staff at a tick.
func (ks *KeySig) Attach(st Staff, tick int) {
	ks.staff = st
	ks.tick = tick
}

// Staff returns the staff ks lives on, or nil.
func (ks *KeySig) Staff() Staff {
	return ks.staff
}

// Tick returns the position of ks in the score, 0 if it is not placed on a staff.
func (ks *KeySig) Tick() int {
	if ks.staff == nil {
		return 0
	}
	return ks.tick
}

// Event returns the key of ks.
func (ks *KeySig) Event() Event {
	return ks.event
}

// SetEvent sets the key of ks. Layout has to be redone by the caller.
func (ks *KeySig) SetEvent(ev Event) {
	ks.event = ev
}

// IsCustom is true if ks shows a custom key signature.
func (ks *KeySig) IsCustom() bool {
	return ks.event.Custom()
}

// CustomType is the registry index of a custom key signature, UnregisteredCustom
// if it is not registered, or 0 for other keys.
func (ks *KeySig) CustomType() int {
	if !ks.event.Custom() {
		return 0
	}
	return ks.event.CustomIndex()
}

// SetCustom turns ks into an unregistered custom key signature made of symbols.
// A document's registry assigns the index when ks is registered.
func (ks *KeySig) SetCustom(symbols []KeySym) {
	ks.event = CustomEvent(UnregisteredCustom)
	ks.symbols = append([]KeySym(nil), symbols...)
	ks.stash = nil
}

// SetSig sets a key change from old to newSig accidentals.
func (ks *KeySig) SetSig(old, newSig int) {
	ks.SetEvent(NewEvent(newSig, old))
}

// SetOldSig sets the accidentals of the previous key, which need cancellation.
func (ks *KeySig) SetOldSig(old int) {
	ks.event = ks.event.WithNaturals(old)
}

// ChangeKeySigEvent switches ks to another key. A custom key is copied from the
// document's registry; if it cannot be found, ks is left unchanged.
func (ks *KeySig) ChangeKeySigEvent(ev Event) {
	if ks.event.Equal(ev) {
		return
	}
	if ev.Custom() {
		if ks.doc == nil {
			return
		}
		c := ks.doc.CustomKeySig(ev.CustomIndex())
		if c == nil {
			tracer().Debugf("custom key signature %d not registered, ignoring change", ev.CustomIndex())
			return
		}
		ks.symbols = append([]KeySym(nil), c.symbols...)
	}
	ks.stash = nil
	ks.SetEvent(ev)
}

// Symbols returns the symbols of the last layout, in insertion order.
// The slice must not be modified.
func (ks *KeySig) Symbols() []KeySym {
	return ks.symbols
}

// BBox is the bounding box of the last layout, in pixels relative to the element origin.
func (ks *KeySig) BBox() geom.Rect {
	return ks.bbox
}

// ShowCourtesy tells whether a courtesy key signature is shown at the end of
// the previous system.
func (ks *KeySig) ShowCourtesy() bool {
	return ks.showCourtesy
}

// SetShowCourtesy sets the courtesy flag without undo.
func (ks *KeySig) SetShowCourtesy(v bool) {
	ks.showCourtesy = v
}

// ShowNaturals tells whether naturals cancelling the previous key are shown.
func (ks *KeySig) ShowNaturals() bool {
	return ks.showNaturals
}

// SetShowNaturals sets the naturals flag without undo.
func (ks *KeySig) SetShowNaturals(v bool) {
	ks.showNaturals = v
}

// Visible tells whether ks is drawn.
func (ks *KeySig) Visible() bool {
	return ks.visible
}

// SetVisible sets the visibility without undo.
func (ks *KeySig) SetVisible(v bool) {
	ks.visible = v
}

// Generated is true for elements the layout engine created on its own.
func (ks *KeySig) Generated() bool {
	return ks.generated
}

// SetGenerated marks ks as created by the system.
func (ks *KeySig) SetGenerated(v bool) {
	ks.generated = v
}

func (ks *KeySig) style() config.Style {
	if ks.doc == nil {
		return config.Default()
	}
	return ks.doc.Style()
}

// MagS is the effective magnification: style magnification times staff magnification.
func (ks *KeySig) MagS() float64 {
	mag := ks.style().Mag
	if ks.staff != nil && ks.staff.Mag() > 0 {
		mag *= ks.staff.Mag()
	}
	return mag
}

// Layout rebuilds the symbol list and bounding box from the current key,
// the staff's clef and the document style.
func (ks *KeySig) Layout() {
	st := ks.style()
	ctx := Context{
		Clef:    clef.G.Lines(),
		Spatium: st.Spatium,
		Mag:     ks.MagS(),
	}
	if ks.doc != nil {
		ctx.Metrics = ks.doc.Metrics()
	}
	if ks.staff != nil {
		ctx.TabStaff = ks.staff.IsTabStaff()
		ctx.Clef = ks.staff.ClefAt(ks.Tick()).Lines()
	}
	if ks.event.Custom() {
		ks.restoreCustom(ctx.TabStaff)
	}
	ks.symbols, ks.bbox = Layout(ks.event, ks.symbols, ks.showNaturals, ctx)
}

// restoreCustom brings back custom symbols dropped by a layout on a tablature
// staff. Registered key signatures take them from the registry, unregistered
// ones from the stash.
func (ks *KeySig) restoreCustom(tab bool) {
	if len(ks.symbols) > 0 {
		if tab && ks.event.CustomIndex() == UnregisteredCustom {
			ks.stash = ks.symbols
		}
		return
	}
	if ks.event.CustomIndex() == UnregisteredCustom {
		ks.symbols = ks.stash
		return
	}
	if ks.doc != nil {
		if c := ks.doc.CustomKeySig(ks.event.CustomIndex()); c != nil {
			ks.symbols = c.symbols
		}
	}
}

// Space is the horizontal room an element takes in a segment.
type Space struct {
	LeftWidth float64 // distance to the preceding element
	Width     float64
}

// Space returns the left margin from the style and the width of the bounding box, in pixels.
func (ks *KeySig) Space() Space {
	st := ks.style()
	return Space{
		LeftWidth: st.KeySigLeftMargin * st.Spatium,
		Width:     ks.bbox.Dx(),
	}
}

// Draw paints the symbols of the last layout with origin at.
func (ks *KeySig) Draw(dst draw.Image, p sym.Painter, at geom.Point, col color.Color) error {
	if !ks.visible || p == nil {
		return nil
	}
	sp, mag := ks.style().Spatium, ks.MagS()
	for _, s := range ks.symbols {
		if err := p.Draw(dst, s.Sym, at.Add(s.Pos), sp, mag, col); err != nil {
			return err
		}
	}
	return nil
}

// Equal compares two key signatures. Custom key signatures are equal if their
// symbols and nominal positions are equal pairwise, in order. Other key
// signatures are equal if their events are.
func (ks *KeySig) Equal(o *KeySig) bool {
	if o == nil {
		return false
	}
	if ks.IsCustom() != o.IsCustom() {
		return false
	}
	if ks.IsCustom() {
		if len(ks.symbols) != len(o.symbols) {
			return false
		}
		for i := range ks.symbols {
			if ks.symbols[i].Sym != o.symbols[i].Sym || ks.symbols[i].SPos != o.symbols[i].SPos {
				return false
			}
		}
		return true
	}
	return ks.event.Equal(o.event)
}
