package sym

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/scorelayout/geom"
)

// TypesettingMetrics answers symbol boxes from glyph extents as reported by
// go-text/typesetting. A font.Face is not safe for concurrent use, neither is
// TypesettingMetrics.
type TypesettingMetrics struct {
	face        *font.Face
	codepoints  CodePoints
	spacesPerEm float64
}

// NewTypesettingMetrics parses font data. cps maps symbols to code points, usually SMuFL().
func NewTypesettingMetrics(data []byte, cps CodePoints, spacesPerEm float64) (*TypesettingMetrics, error) {
	if spacesPerEm <= 0 {
		return nil, fmt.Errorf("invalid spaces per em: %g", spacesPerEm)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot parse font: %w", err)
	}
	if cps == nil {
		cps = SMuFL()
	}
	return &TypesettingMetrics{face: face, codepoints: cps, spacesPerEm: spacesPerEm}, nil
}

// BBox implements Metrics.
func (m *TypesettingMetrics) BBox(id ID, mag float64) geom.Rect {
	r, ok := m.codepoints.Rune(id)
	if !ok {
		tracer().Errorf("bbox: no code point for symbol %s", id)
		return geom.Rect{}
	}
	gid, ok := m.face.NominalGlyph(r)
	if !ok {
		tracer().Errorf("bbox: font has no glyph for %s (%#U)", id, r)
		return geom.Rect{}
	}
	ext, ok := m.face.GlyphExtents(gid)
	if !ok {
		return geom.Rect{}
	}
	// extents are y-up: YBearing is the top, Height is negative
	f := m.spacesPerEm / float64(m.face.Upem())
	x0, y0 := float64(ext.XBearing), -float64(ext.YBearing)
	x1, y1 := x0+float64(ext.Width), y0-float64(ext.Height)
	return geom.R(x0, y0, x1, y1).Scale(f * mag)
}

var _ Metrics = (*TypesettingMetrics)(nil)
