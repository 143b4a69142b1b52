/*
Package clef holds the clef table used to place accidentals on a staff.

For every clef type the table lists 14 staff positions. Entries 0–6 are the
positions of the sharps F♯ C♯ G♯ D♯ A♯ E♯ B♯, entries 7–13 the positions of the
flats B♭ E♭ A♭ D♭ G♭ C♭ F♭, in the order they appear in a key signature.
A position is counted in half staff spaces from the top staff line downwards;
negative values are above the staff.

The positions follow engraving convention and are a fixed lookup table.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package clef

import (
	"fmt"
	"strings"
)

// Type is a clef kind.
type Type int

// Clef types. Treble is the zero value.
const (
	G Type = iota
	G8va
	G15ma
	G8vb
	F
	F8vb
	F15mb
	F3
	F5
	C1
	C2
	C3
	C4
	C5
	G1
	Tab
	Perc
	maxType
)

// Lines are the staff positions of one clef: 7 sharps, then 7 flats.
type Lines [14]int

// Info describes one clef type.
type Info struct {
	Tag   string // markup tag
	Name  string // human readable name
	Line  int    // staff line the clef sits on, counted from the bottom
	Lines Lines
}

var (
	trebleLines   = Lines{0, 3, -1, 2, 5, 1, 4, 4, 1, 5, 2, 6, 3, 7}
	bassLines     = Lines{2, 5, 1, 4, 7, 3, 6, 6, 3, 7, 4, 8, 5, 9}
	baritoneLines = Lines{4, 0, 3, -1, 2, 5, 1, 1, 5, 2, 6, 3, 7, 4}
)

var table = [maxType]Info{
	G:     {"G", "Treble clef", 2, trebleLines},
	G8va:  {"G8va", "Treble clef 8va", 2, trebleLines},
	G15ma: {"G15ma", "Treble clef 15ma", 2, trebleLines},
	G8vb:  {"G8vb", "Treble clef 8vb", 2, trebleLines},
	F:     {"F", "Bass clef", 4, bassLines},
	F8vb:  {"F8vb", "Bass clef 8vb", 4, bassLines},
	F15mb: {"F15mb", "Bass clef 15mb", 4, bassLines},
	F3:    {"F3", "Baritone clef (F clef)", 3, baritoneLines},
	F5:    {"F5", "Subbass clef", 5, Lines{0, 3, 6, 2, 5, 1, 4, 4, 1, 5, 2, 6, 3, 7}},
	C1:    {"C1", "Soprano clef", 1, Lines{5, 1, 4, 0, 3, -1, 2, 2, 6, 3, 7, 4, 8, 5}},
	C2:    {"C2", "Mezzo-soprano clef", 2, Lines{3, 6, 2, 5, 1, 4, 0, 0, 4, 1, 5, 2, 6, 3}},
	C3:    {"C3", "Alto clef", 3, Lines{1, 4, 0, 3, 6, 2, 5, 5, 2, 6, 3, 7, 4, 8}},
	C4:    {"C4", "Tenor clef", 4, Lines{6, 2, 5, 1, 4, 0, 3, 3, 0, 4, 1, 5, 2, 6}},
	C5:    {"C5", "Baritone clef (C clef)", 5, baritoneLines},
	G1:    {"G1", "French violin clef", 1, bassLines},
	Tab:   {"TAB", "Tablature", 5, trebleLines},
	Perc:  {"PERC", "Percussion", 2, trebleLines},
}

// Valid is true for every known clef type.
func (t Type) Valid() bool {
	return t >= G && t < maxType
}

// Info returns the table entry for t. Unknown types fall back to the treble clef.
func (t Type) Info() Info {
	if !t.Valid() {
		return table[G]
	}
	return table[t]
}

// Lines returns the accidental positions for t.
func (t Type) Lines() Lines {
	return t.Info().Lines
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("clef(%d)", int(t))
	}
	return table[t].Tag
}

// Parse finds a clef type by markup tag (case-insensitive).
func Parse(tag string) (Type, error) {
	for i, info := range table {
		if strings.EqualFold(info.Tag, tag) {
			return Type(i), nil
		}
	}
	return G, fmt.Errorf("unknown clef %q", tag)
}

// Types returns all clef types in table order.
func Types() []Type {
	types := make([]Type, maxType)
	for i := range types {
		types[i] = Type(i)
	}
	return types
}
