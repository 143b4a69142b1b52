package keysig

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scorelayout/clef"
	"github.com/npillmayer/scorelayout/config"
	"github.com/npillmayer/scorelayout/geom"
	"github.com/npillmayer/scorelayout/sym"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake score ------------------------------------------------------------

type fakeStaff struct {
	clef clef.Type
	tab  bool
	mag  float64
}

func (st *fakeStaff) ClefAt(int) clef.Type { return st.clef }
func (st *fakeStaff) IsTabStaff() bool     { return st.tab }
func (st *fakeStaff) Mag() float64         { return st.mag }

type keyChange struct {
	staff Staff
	tick  int
	ev    Event
}

type propChange struct {
	ks *KeySig
	id PropertyID
	v  any
}

type fakeDoc struct {
	style     config.Style
	staves    []Staff
	custom    []*KeySig
	layoutAll bool
	macros    []string
	open      int
	keys      []keyChange
	props     []propChange
}

func newFakeDoc(staves ...Staff) *fakeDoc {
	return &fakeDoc{style: config.Default(), staves: staves}
}

func (d *fakeDoc) Style() config.Style   { return d.style }
func (d *fakeDoc) Metrics() sym.Metrics  { return sym.StaticMetrics{} }
func (d *fakeDoc) Staves() []Staff       { return d.staves }
func (d *fakeDoc) SetLayoutAll(all bool) { d.layoutAll = all }
func (d *fakeDoc) EndMacro()             { d.open-- }

func (d *fakeDoc) BeginMacro(name string) {
	d.macros = append(d.macros, name)
	d.open++
}

func (d *fakeDoc) CustomKeySig(idx int) *KeySig {
	if idx < 0 || idx >= len(d.custom) {
		return nil
	}
	return d.custom[idx]
}

func (d *fakeDoc) CustomKeySigIdx(ks *KeySig) int {
	for i, c := range d.custom {
		if c == ks {
			return i
		}
	}
	return -1
}

func (d *fakeDoc) AddCustomKeySig(ks *KeySig) int {
	d.custom = append(d.custom, ks)
	return len(d.custom) - 1
}

func (d *fakeDoc) UndoChangeKeySig(st Staff, tick int, ev Event) {
	d.keys = append(d.keys, keyChange{st, tick, ev})
}

func (d *fakeDoc) UndoChangeProperty(ks *KeySig, id PropertyID, v any) {
	d.props = append(d.props, propChange{ks, id, v})
	ks.SetProperty(id, v)
}

func customSymbols() []KeySym {
	return []KeySym{
		{Sym: sym.FlatSym, SPos: geom.Pt(0, 2)},
		{Sym: sym.SharpSym, SPos: geom.Pt(1.5, -0.5)},
	}
}

// --- Tests -----------------------------------------------------------------

func TestNewKeySigDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	ks := New(nil)
	assert.True(t, ks.ShowCourtesy())
	assert.True(t, ks.ShowNaturals())
	assert.True(t, ks.Visible())
	assert.False(t, ks.Generated())
	assert.False(t, ks.IsCustom())
	assert.Equal(t, 0, ks.Tick())
	assert.Equal(t, KindKeySig, ks.Kind())
	for _, id := range []PropertyID{PropVisible, PropShowCourtesy, PropShowNaturals} {
		v, ok := ks.PropertyDefault(id)
		assert.True(t, ok)
		assert.Equal(t, true, v)
	}
}

func TestKeySigLayoutUsesStaff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	st := &fakeStaff{clef: clef.F, mag: 1}
	doc := newFakeDoc(st)
	ks := New(doc)
	ks.Attach(st, 480)
	ks.SetSig(0, 1)
	ks.Layout()
	require.Len(t, ks.Symbols(), 1)
	assert.Equal(t, geom.Pt(0, 1), ks.Symbols()[0].SPos, "F sharp is on the second line in bass clef")
	assert.Equal(t, 480, ks.Tick())

	sp := ks.Space()
	assert.InDelta(t, doc.style.KeySigLeftMargin*doc.style.Spatium, sp.LeftWidth, 1e-9)
	assert.InDelta(t, ks.BBox().Dx(), sp.Width, 1e-9)

	st.mag = 0.5
	assert.InDelta(t, 0.5, ks.MagS(), 1e-9)
}

func TestKeySigOnTabStaff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	st := &fakeStaff{clef: clef.Tab, tab: true, mag: 1}
	doc := newFakeDoc(st)
	c := New(doc)
	c.SetCustom(customSymbols())
	idx := doc.AddCustomKeySig(c)

	ks := New(doc)
	ks.Attach(st, 0)
	ks.ChangeKeySigEvent(CustomEvent(idx))
	ks.Layout()
	assert.Empty(t, ks.Symbols())
	assert.True(t, ks.BBox().Empty())

	// moving to a regular staff brings the custom symbols back
	ks.Attach(&fakeStaff{clef: clef.G, mag: 1}, 0)
	ks.Layout()
	assert.Len(t, ks.Symbols(), 2)
}

func TestKeySigEqual(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	a, b := New(nil), New(nil)
	a.SetSig(-1, 2)
	b.SetSig(-1, 2)
	assert.True(t, a.Equal(b))
	b.SetOldSig(0)
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))

	a.SetCustom(customSymbols())
	b.SetCustom(customSymbols())
	assert.True(t, a.Equal(b))
	rev := customSymbols()
	rev[0], rev[1] = rev[1], rev[0]
	b.SetCustom(rev)
	assert.False(t, a.Equal(b), "custom key signatures compare in order")
	b.SetCustom(customSymbols()[:1])
	assert.False(t, a.Equal(b))

	// keys with equal counts are equal whatever their symbols
	a, b = New(nil), New(nil)
	a.SetCustom(customSymbols())
	a.ChangeKeySigEvent(NewEvent(3, 0))
	b.SetSig(0, 3)
	require.NotEmpty(t, a.Symbols(), "stale custom symbols")
	assert.True(t, a.Equal(b))
	a.Layout()
	assert.Len(t, a.Symbols(), 3)
	assert.Empty(t, b.Symbols())
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestUnregisteredCustomSurvivesTabStaff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	st := &fakeStaff{clef: clef.G, mag: 1}
	doc := newFakeDoc(st)
	reg := New(doc)
	reg.SetCustom([]KeySym{{Sym: sym.DoubleFlatSym, SPos: geom.Pt(0, 1)}})
	doc.AddCustomKeySig(reg)

	sharps := []KeySym{
		{Sym: sym.SharpSym, SPos: geom.Pt(0, 0)},
		{Sym: sym.SharpSym, SPos: geom.Pt(1, 1.5)},
	}
	ks := New(doc)
	ks.Attach(st, 0)
	ks.SetCustom(sharps)
	assert.Equal(t, UnregisteredCustom, ks.CustomType())
	ks.Layout()
	require.Len(t, ks.Symbols(), 2)

	st.tab = true
	ks.Layout()
	assert.Empty(t, ks.Symbols())
	st.tab = false
	ks.Layout()
	require.Len(t, ks.Symbols(), 2, "own symbols come back, not those of the registry")
	assert.Equal(t, sym.SharpSym, ks.Symbols()[0].Sym)
	assert.Equal(t, sym.SharpSym, ks.Symbols()[1].Sym)

	other := New(doc)
	other.SetCustom(customSymbols())
	assert.False(t, ks.Equal(other), "unregistered custom keys compare by symbols")
	assert.False(t, ks.Event().Equal(other.Event()))
}

func TestKeySigClone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	ks := New(nil)
	ks.Attach(&fakeStaff{clef: clef.G, mag: 1}, 960)
	ks.SetCustom(customSymbols())
	c := ks.Clone()
	assert.True(t, ks.Equal(c))
	assert.Nil(t, c.Staff())
	c.symbols[0].Sym = sym.NaturalSym
	assert.Equal(t, sym.FlatSym, ks.Symbols()[0].Sym)
}

func TestChangeKeySigEvent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	doc := newFakeDoc()
	ks := New(doc)
	ks.ChangeKeySigEvent(NewEvent(4, 0))
	assert.Equal(t, 4, ks.Event().Accidentals())

	ks.ChangeKeySigEvent(CustomEvent(3))
	assert.False(t, ks.IsCustom(), "unregistered custom key must be ignored")

	c := New(doc)
	c.SetCustom(customSymbols())
	idx := doc.AddCustomKeySig(c)
	ks.ChangeKeySigEvent(CustomEvent(idx))
	assert.True(t, ks.IsCustom())
	assert.Equal(t, idx, ks.CustomType())
	assert.True(t, ks.Equal(c))
}

func TestProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	doc := newFakeDoc()
	ks := New(doc)
	ks.SetGenerated(true)
	assert.True(t, ks.SetProperty(PropShowNaturals, false))
	assert.False(t, ks.ShowNaturals())
	assert.True(t, doc.layoutAll)
	assert.False(t, ks.Generated(), "user edits make an element non-generated")

	v, ok := ks.GetProperty(PropShowNaturals)
	assert.True(t, ok)
	assert.Equal(t, false, v)

	assert.False(t, ks.SetProperty(PropVisible, "no"), "wrong value type")
	assert.True(t, ks.Visible())
	assert.False(t, ks.SetProperty(PropertyID(99), true))
	_, ok = ks.GetProperty(PropertyID(99))
	assert.False(t, ok)
	assert.Equal(t, "property(99)", PropertyID(99).String())
}

func TestUndoableProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	assert.ErrorIs(t, New(nil).UndoSetShowCourtesy(false), ErrNoDocument)
	doc := newFakeDoc()
	ks := New(doc)
	require.NoError(t, ks.UndoSetShowCourtesy(false))
	require.NoError(t, ks.UndoSetShowNaturals(false))
	require.Len(t, doc.props, 2)
	assert.Equal(t, PropShowCourtesy, doc.props[0].id)
	assert.Equal(t, PropShowNaturals, doc.props[1].id)
	assert.False(t, ks.ShowCourtesy())
	assert.False(t, ks.ShowNaturals())
}

func TestDropRejectsOtherElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	ks := New(newFakeDoc())
	assert.False(t, ks.AcceptDrop(otherElement(KindClef)))
	assert.False(t, ks.AcceptDrop(nil))
	assert.Nil(t, ks.Drop(DropData{Element: otherElement(KindNote)}))
	assert.Nil(t, New(nil).Drop(DropData{Element: New(nil)}), "drop needs a document")
}

func TestDropOnAllStaves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	s1, s2 := &fakeStaff{clef: clef.G, mag: 1}, &fakeStaff{clef: clef.F, mag: 1}
	doc := newFakeDoc(s1, s2)
	ks := New(doc)
	ks.Attach(s1, 1920)
	dropped := New(nil)
	dropped.SetSig(0, -2)
	assert.Same(t, ks, ks.Drop(DropData{Element: dropped}))
	require.Len(t, doc.keys, 2)
	assert.Equal(t, keyChange{s1, 1920, NewEvent(-2, 0)}, doc.keys[0])
	assert.Equal(t, keyChange{s2, 1920, NewEvent(-2, 0)}, doc.keys[1])
	assert.Equal(t, 0, doc.open, "macro must be closed")
	assert.Len(t, doc.macros, 1)
}

func TestDropOnSingleStaff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	s1, s2 := &fakeStaff{clef: clef.G, mag: 1}, &fakeStaff{clef: clef.F, mag: 1}
	doc := newFakeDoc(s1, s2)
	ks := New(doc)
	ks.Attach(s2, 0)
	ks.SetSig(0, 3)
	same := New(nil)
	same.SetSig(0, 3)
	ks.Drop(DropData{Element: same, Modifiers: ModControl})
	assert.Empty(t, doc.keys, "dropping the same key is a no-op")

	other := New(nil)
	other.SetSig(0, 1)
	ks.Drop(DropData{Element: other, Modifiers: ModControl | ModShift})
	require.Len(t, doc.keys, 1)
	assert.Equal(t, s2, doc.keys[0].staff)
}

func TestDropCustomRegisters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	st := &fakeStaff{clef: clef.G, mag: 1}
	doc := newFakeDoc(st)
	doc.AddCustomKeySig(New(doc)) // occupy index 0
	ks := New(doc)
	ks.Attach(st, 0)
	dropped := New(nil)
	dropped.SetCustom(customSymbols())
	ks.Drop(DropData{Element: dropped})
	require.Len(t, doc.custom, 2)
	assert.Same(t, dropped, doc.custom[1])
	assert.Equal(t, doc, dropped.Document())
	require.Len(t, doc.keys, 1)
	assert.True(t, doc.keys[0].ev.Equal(CustomEvent(1)))
	assert.Equal(t, 1, dropped.CustomType(), "the registry index is written back")

	// dropping it again reuses the registry entry
	ks.Drop(DropData{Element: dropped})
	assert.Len(t, doc.custom, 2)
	assert.True(t, doc.keys[1].ev.Equal(CustomEvent(1)))
}

func TestDrawPaintsVisibleSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	ks := New(nil)
	ks.SetSig(0, -3)
	ks.Layout()
	p := &countingPainter{}
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	require.NoError(t, ks.Draw(img, p, geom.Pt(5, 5), color.Black))
	assert.Equal(t, 3, p.n)
	ks.SetVisible(false)
	require.NoError(t, ks.Draw(img, p, geom.Pt(5, 5), color.Black))
	assert.Equal(t, 3, p.n, "invisible key signatures are not drawn")
}

func TestKeySigString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	//
	assert.Equal(t, "KeySig", KindKeySig.String())
	assert.Equal(t, "Unknown", ElementKind(42).String())
}

type otherElement ElementKind

func (e otherElement) Kind() ElementKind { return ElementKind(e) }

type countingPainter struct{ n int }

func (p *countingPainter) Draw(draw.Image, sym.ID, geom.Point, float64, float64, color.Color) error {
	p.n++
	return nil
}
