/*
Package scorelayout lays out musical symbols of a score.

The heart of the module is package keysig, which computes the placement of
key signature symbols on a staff. The packages around it provide what a key
signature needs from its environment:

▪︎ sym: the musical symbols, their glyph boxes and drawing.

▪︎ clef: the staff positions of accidentals for every clef.

▪︎ config: the layout style, read from TOML.

▪︎ score: a minimal score document with staves, undo and a registry of custom
key signatures.

This package loads music fonts. A music font is a scalable font with glyphs
for the musical symbols, usually laid out according to SMuFL (Standard Music
Font Layout), where one em equals four staff spaces:

	mf, err := scorelayout.LoadMusicFont("Bravura.otf", config.Default())
	…
	sc := score.New(style, mf.Metrics)

Text fonts may be used as well, mapping symbols to ASCII characters. This is
mainly useful for testing.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package scorelayout

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/scorelayout/config"
	"github.com/npillmayer/scorelayout/internal/fontload"
	"github.com/npillmayer/scorelayout/sym"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'scorelayout'
func tracer() tracing.Trace {
	return tracing.Select("scorelayout")
}

// MusicFont is a scalable font used to draw musical symbols.
type MusicFont struct {
	Fontname string
	Filepath string
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
	Metrics  *sym.SFNTMetrics
	style    config.Style
}

// LoadMusicFont loads a music font (TTF or OTF) from a file.
func LoadMusicFont(fontfile string, style config.Style) (*MusicFont, error) {
	f, err := fontload.Load(fontfile)
	if err != nil {
		return nil, err
	}
	return newMusicFont(f, style)
}

// ParseMusicFont loads a music font (TTF or OTF) from memory.
func ParseMusicFont(fbytes []byte, style config.Style) (*MusicFont, error) {
	f, err := fontload.Parse(fbytes)
	if err != nil {
		return nil, err
	}
	return newMusicFont(f, style)
}

func newMusicFont(f *fontload.MusicFontFile, style config.Style) (*MusicFont, error) {
	m, err := sym.NewSFNTMetrics(f.SFNT, style.CodePoints(), style.Font.SpacesPerEm)
	if err != nil {
		return nil, err
	}
	mf := &MusicFont{
		Fontname: f.Fontname,
		Filepath: f.Filepath,
		Binary:   f.Binary,
		SFNT:     f.SFNT,
		Metrics:  m,
		style:    style,
	}
	if missing := mf.Missing(); len(missing) > 0 {
		tracer().Infof("music font %s lacks glyphs for %v", mf.Fontname, missing)
	} else {
		tracer().Debugf("loaded music font %s, %d glyphs at %d units/em", mf.Fontname, f.NumGlyphs, f.UnitsPerEm)
	}
	return mf, nil
}

// Missing lists the symbols the font has no glyph for.
func (mf *MusicFont) Missing() []sym.ID {
	var missing []sym.ID
	for _, id := range sym.All() {
		if !mf.Metrics.HasGlyph(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// TypesettingMetrics parses the font a second time with go-text/typesetting.
// It is used to cross-check glyph boxes.
func (mf *MusicFont) TypesettingMetrics() (*sym.TypesettingMetrics, error) {
	m, err := sym.NewTypesettingMetrics(mf.Binary, mf.style.CodePoints(), mf.style.Font.SpacesPerEm)
	if err != nil {
		return nil, fmt.Errorf("music font %s: %w", mf.Fontname, err)
	}
	return m, nil
}
