// Package fontload reads the binary of a music font and checks that it can
// serve as a source of symbol glyphs.
package fontload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font/sfnt"
)

// ErrNoGlyphs is returned for fonts without any outline glyphs.
var ErrNoGlyphs = errors.New("font has no glyphs")

// MusicFontFile is a parsed music font file. Binary is kept for parsers which
// need the raw data, e.g. for cross-checking glyph boxes.
type MusicFontFile struct {
	Fontname   string
	Filepath   string
	Binary     []byte
	SFNT       *sfnt.Font
	UnitsPerEm int
	NumGlyphs  int
}

// Load reads a music font (TTF or OTF) from fontfile.
func Load(fontfile string) (*MusicFontFile, error) {
	data, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("music font %s: %w", filepath.Base(fontfile), err)
	}
	f.Filepath = fontfile
	return f, nil
}

// Parse reads a music font from memory. Fonts without a full name are
// accepted with an empty Fontname; fonts without glyphs are not.
func Parse(data []byte) (*MusicFontFile, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	f := &MusicFontFile{
		Binary:     data,
		SFNT:       sf,
		UnitsPerEm: int(sf.UnitsPerEm()),
		NumGlyphs:  sf.NumGlyphs(),
	}
	if f.NumGlyphs <= 1 { // glyph 0 is .notdef
		return nil, ErrNoGlyphs
	}
	if name, err := sf.Name(nil, sfnt.NameIDFull); err == nil {
		f.Fontname = name
	}
	return f, nil
}
