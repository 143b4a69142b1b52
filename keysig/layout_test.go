package keysig

import (
	"math"
	"math/bits"
	"os"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scorelayout/clef"
	"github.com/npillmayer/scorelayout/geom"
	"github.com/npillmayer/scorelayout/sym"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

// --- Test Suite Preparation ------------------------------------------------

type layoutCase struct {
	Name         string `yaml:"name"`
	Clef         string `yaml:"clef"`
	Tab          bool   `yaml:"tab"`
	Accidentals  int    `yaml:"accidentals"`
	Naturals     int    `yaml:"naturals"`
	ShowNaturals bool   `yaml:"show_naturals"`
	Symbols      []struct {
		Sym string  `yaml:"sym"`
		X   float64 `yaml:"x"`
		Y   float64 `yaml:"y"`
	} `yaml:"symbols"`
}

type LayoutTestEnviron struct {
	suite.Suite
	cases []layoutCase
}

// listen for 'go test' command --> run test methods
func TestLayoutFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scorelayout.keysig")
	defer teardown()
	suite.Run(t, new(LayoutTestEnviron))
}

// run once, before test suite methods
func (env *LayoutTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	data, err := os.ReadFile("testdata/layouts.yaml")
	env.Require().NoError(err)
	env.Require().NoError(yaml.Unmarshal(data, &env.cases))
	env.Require().NotEmpty(env.cases, "expected layout fixtures")
}

func treble() Context {
	return Context{Clef: clef.G.Lines(), Spatium: 1}
}

// --- Tests -----------------------------------------------------------------

func (env *LayoutTestEnviron) TestFixtures() {
	for _, c := range env.cases {
		ct, err := clef.Parse(c.Clef)
		env.Require().NoError(err, c.Name)
		ctx := Context{Clef: ct.Lines(), TabStaff: c.Tab, Spatium: 1}
		syms, _ := Layout(NewEvent(c.Accidentals, c.Naturals), nil, c.ShowNaturals, ctx)
		env.Require().Len(syms, len(c.Symbols), "%s: number of symbols", c.Name)
		for i, want := range c.Symbols {
			id, err := sym.Parse(want.Sym)
			env.Require().NoError(err, c.Name)
			env.Equal(id, syms[i].Sym, "%s: symbol #%d", c.Name, i)
			env.Equal(geom.Pt(want.X, want.Y), syms[i].SPos, "%s: position of symbol #%d", c.Name, i)
		}
	}
}

func (env *LayoutTestEnviron) TestSymbolCount() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelError)
	defer tracer().SetTraceLevel(level)
	for t1 := -MaxAccidentals; t1 <= MaxAccidentals; t1++ {
		for t2 := -MaxAccidentals; t2 <= MaxAccidentals; t2++ {
			acc, nat := masks[abs(t1)], masks[abs(t2)]
			if (t1 > 0) == (t2 > 0) {
				nat &^= acc
			}
			syms, _ := Layout(NewEvent(t1, t2), nil, true, treble())
			env.Equal(bits.OnesCount(uint(acc))+bits.OnesCount(uint(nat)), len(syms),
				"key %d cancelling %d", t1, t2)
			hidden, _ := Layout(NewEvent(t1, t2), nil, false, treble())
			env.Equal(abs(t1), len(hidden), "key %d cancelling %d without naturals", t1, t2)
		}
	}
}

func (env *LayoutTestEnviron) TestNaturalsPrecedeAccidentals() {
	syms, _ := Layout(NewEvent(-4, 3), nil, true, treble())
	env.Require().Len(syms, 7)
	for i, s := range syms {
		if i < 3 {
			env.Equal(sym.NaturalSym, s.Sym)
			env.Equal(float64(i), s.SPos.X)
		} else {
			env.Equal(sym.FlatSym, s.Sym)
			env.GreaterOrEqual(s.SPos.X, 3.0, "flats have to follow the naturals")
		}
	}
}

func (env *LayoutTestEnviron) TestLayoutIsIdempotent() {
	ev := NewEvent(5, -2)
	ctx := Context{Clef: clef.F.Lines(), Spatium: 12, Mag: 0.8}
	s1, b1 := Layout(ev, nil, true, ctx)
	s2, b2 := Layout(ev, s1, true, ctx)
	env.Equal(s1, s2)
	env.Equal(b1, b2)
}

func (env *LayoutTestEnviron) TestPixelPositionsAndBBox() {
	ctx := Context{Clef: clef.G.Lines(), Spatium: 10}
	syms, bbox := Layout(NewEvent(1, 0), nil, true, ctx)
	env.Require().Len(syms, 1)
	env.Equal(geom.Pt(0, 0), syms[0].Pos)
	env.InDelta(0.0, bbox.Min.X, 1e-9)
	env.InDelta(-14.0, bbox.Min.Y, 1e-9)
	env.InDelta(9.96, bbox.Max.X, 1e-9)
	env.InDelta(13.92, bbox.Max.Y, 1e-9)

	syms, bbox = Layout(NewEvent(2, 0), nil, true, ctx)
	env.Require().Len(syms, 2)
	env.Equal(geom.Pt(10, 15), syms[0].Pos)
	env.Equal(geom.Pt(0, 0), syms[1].Pos)
	env.InDelta(19.96, bbox.Max.X, 1e-9)
}

func (env *LayoutTestEnviron) TestMagnification() {
	ctx := Context{Clef: clef.G.Lines(), Spatium: 10}
	_, full := Layout(NewEvent(1, 0), nil, true, ctx)
	ctx.Mag = 0.5
	_, half := Layout(NewEvent(1, 0), nil, true, ctx)
	env.InDelta(full.Dx()/2, half.Dx(), 1e-9)
	env.InDelta(full.Dy()/2, half.Dy(), 1e-9)
}

func (env *LayoutTestEnviron) TestIllegalCountsDegrade() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelError)
	defer tracer().SetTraceLevel(level)
	cases := []struct {
		ev       Event
		sharps   int
		flats    int
		naturals int
	}{
		{NewEvent(9, 0), 0, 0, 0},
		{NewEvent(-8, 0), 0, 0, 0},
		{NewEvent(2, -8), 2, 0, 0},
		{NewEvent(-1, 12), 0, 1, 0},
		{NewEvent(math.MinInt, 3), 0, 0, 3},
		{NewEvent(math.MaxInt, -2), 0, 0, 2},
		{NewEvent(-1, math.MinInt), 0, 1, 0},
		{NewEvent(3, math.MaxInt), 3, 0, 0},
		{NewEvent(math.MinInt, math.MinInt), 0, 0, 0},
		{NewEvent(math.MaxInt, math.MaxInt), 0, 0, 0},
	}
	for _, c := range cases {
		syms, _ := Layout(c.ev, nil, true, treble())
		count := map[sym.ID]int{}
		for _, s := range syms {
			count[s.Sym]++
		}
		env.Equal(c.sharps, count[sym.SharpSym], "sharps of %v", c.ev)
		env.Equal(c.flats, count[sym.FlatSym], "flats of %v", c.ev)
		env.Equal(c.naturals, count[sym.NaturalSym], "naturals of %v", c.ev)
	}
}

func (env *LayoutTestEnviron) TestCustomSymbolsAreCopied() {
	custom := []KeySym{
		{Sym: sym.FlatSym, SPos: geom.Pt(0, 2)},
		{Sym: sym.SharpSym, SPos: geom.Pt(1.5, -0.5)},
	}
	ctx := Context{Clef: clef.G.Lines(), Spatium: 10}
	syms, bbox := Layout(CustomEvent(0), custom, true, ctx)
	env.Require().Len(syms, 2)
	env.Equal(geom.Pt(15, -5), syms[1].Pos)
	env.False(bbox.Empty())
	syms[0].Sym = sym.NaturalSym
	env.Equal(sym.FlatSym, custom[0].Sym, "layout must not alias custom symbols")
}

func (env *LayoutTestEnviron) TestTabStaffHasNoSymbols() {
	ctx := treble()
	ctx.TabStaff = true
	syms, bbox := Layout(NewEvent(-6, 2), nil, true, ctx)
	env.Empty(syms)
	env.True(bbox.Empty())
}

func (env *LayoutTestEnviron) TestMetricsOverride() {
	ctx := treble()
	ctx.Metrics = unitMetrics{}
	_, bbox := Layout(NewEvent(0, 3), nil, true, ctx)
	env.Equal(geom.R(0, -0.5, 3, 2.5), bbox)
}

// unitMetrics has a 1×1 box hanging below the symbol origin.
type unitMetrics struct{}

func (unitMetrics) BBox(id sym.ID, mag float64) geom.Rect {
	return geom.R(0, 0, mag, mag)
}
