/*
Package sym knows about the musical symbols (glyphs) a key signature is made of.

Symbols are identified by an ID. Clients ask a Metrics provider for a symbol's
bounding box and a Painter to draw it. Three providers are available:

▪︎ StaticMetrics uses a built-in table of bounding boxes taken from the Bravura
music font. It needs no font file and is what layout uses by default.

▪︎ SFNTMetrics queries a loaded OpenType/TrueType font through golang.org/x/image/font/sfnt.
It is a Painter as well and rasterizes glyph outlines.

▪︎ TypesettingMetrics queries a font through github.com/go-text/typesetting.

All bounding boxes are given in staff spaces (spatium units), with the y-axis pointing
downwards and the glyph origin at (0,0). Fonts conforming to SMuFL have an em of
4 staff spaces.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sym

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scorelayout.sym'
func tracer() tracing.Trace {
	return tracing.Select("scorelayout.sym")
}

// ID identifies a musical symbol.
type ID int

// Symbols used by key signatures. The numeric values are used by legacy markup
// and must not change.
const (
	NoSym ID = iota
	NaturalSym
	SharpSym
	FlatSym
	DoubleSharpSym
	DoubleFlatSym
	symCount
)

var symNames = [symCount]string{
	"noSym",
	"accidentalNatural",
	"accidentalSharp",
	"accidentalFlat",
	"accidentalDoubleSharp",
	"accidentalDoubleFlat",
}

// Name returns the SMuFL glyph name of a symbol.
func (id ID) Name() string {
	if !id.Valid() {
		return fmt.Sprintf("sym(%d)", int(id))
	}
	return symNames[id]
}

func (id ID) String() string {
	return id.Name()
}

// Valid is true for every symbol this package knows about, except NoSym.
func (id ID) Valid() bool {
	return id > NoSym && id < symCount
}

// All returns all valid symbols in ID order.
func All() []ID {
	ids := make([]ID, 0, symCount-1)
	for id := NaturalSym; id < symCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Parse finds a symbol by its SMuFL name or by its legacy numeric ID.
func Parse(s string) (ID, error) {
	for i, name := range symNames {
		if name == s && ID(i) != NoSym {
			return ID(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return NoSym, fmt.Errorf("unknown symbol %q", s)
	}
	if id := ID(n); id.Valid() {
		return id, nil
	}
	return NoSym, fmt.Errorf("symbol id %d out of range", n)
}

// CodePoints maps symbols to the runes a font uses for them.
type CodePoints map[ID]rune

// SMuFL returns the code points of the Standard Music Font Layout.
func SMuFL() CodePoints {
	return CodePoints{
		FlatSym:        '\uE260',
		NaturalSym:     '\uE261',
		SharpSym:       '\uE262',
		DoubleSharpSym: '\uE263',
		DoubleFlatSym:  '\uE264',
	}
}

// ASCII returns stand-in code points for text fonts without musical symbols.
// Useful for debugging and for tests.
func ASCII() CodePoints {
	return CodePoints{
		FlatSym:        'b',
		NaturalSym:     'n',
		SharpSym:       '#',
		DoubleSharpSym: 'x',
		DoubleFlatSym:  'B',
	}
}

// Rune returns the code point for id, or false if the mapping does not know it.
func (cps CodePoints) Rune(id ID) (rune, bool) {
	r, ok := cps[id]
	return r, ok
}
