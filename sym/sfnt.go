package sym

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/npillmayer/scorelayout/geom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// SFNTMetrics queries symbol boxes and outlines from an SFNT font.
// It implements Metrics and Painter and is safe for concurrent use.
type SFNTMetrics struct {
	font        *sfnt.Font
	codepoints  CodePoints
	spacesPerEm float64
	mx          sync.Mutex // guards buf and boxes
	buf         sfnt.Buffer
	boxes       map[ID]geom.Rect // unscaled
}

// NewSFNTMetrics wraps a parsed font. cps maps symbols to code points, usually SMuFL().
// spacesPerEm is the number of staff spaces per em, 4 for SMuFL fonts.
func NewSFNTMetrics(f *sfnt.Font, cps CodePoints, spacesPerEm float64) (*SFNTMetrics, error) {
	if f == nil {
		return nil, errors.New("sfnt metrics need a font")
	}
	if spacesPerEm <= 0 {
		return nil, fmt.Errorf("invalid spaces per em: %g", spacesPerEm)
	}
	if cps == nil {
		cps = SMuFL()
	}
	return &SFNTMetrics{
		font:        f,
		codepoints:  cps,
		spacesPerEm: spacesPerEm,
		boxes:       make(map[ID]geom.Rect),
	}, nil
}

// glyph finds the glyph index for a symbol. Caller must hold mx.
func (m *SFNTMetrics) glyph(id ID) (sfnt.GlyphIndex, error) {
	r, ok := m.codepoints.Rune(id)
	if !ok {
		return 0, fmt.Errorf("no code point for symbol %s", id)
	}
	gid, err := m.font.GlyphIndex(&m.buf, r)
	if err != nil {
		return 0, err
	}
	if gid == 0 {
		return 0, fmt.Errorf("font has no glyph for %s (%#U)", id, r)
	}
	return gid, nil
}

// HasGlyph tells whether the font has a glyph for a symbol.
func (m *SFNTMetrics) HasGlyph(id ID) bool {
	m.mx.Lock()
	defer m.mx.Unlock()
	_, err := m.glyph(id)
	return err == nil
}

// BBox implements Metrics.
func (m *SFNTMetrics) BBox(id ID, mag float64) geom.Rect {
	m.mx.Lock()
	defer m.mx.Unlock()
	if box, ok := m.boxes[id]; ok {
		return box.Scale(mag)
	}
	gid, err := m.glyph(id)
	if err != nil {
		tracer().Errorf("bbox: %v", err)
		return geom.Rect{}
	}
	upem := m.font.UnitsPerEm()
	// at ppem == upem, 26.6 values are font units times 64
	bounds, _, err := m.font.GlyphBounds(&m.buf, gid, fixed.I(int(upem)), font.HintingNone)
	if err != nil {
		tracer().Errorf("bbox: cannot query bounds of %s: %v", id, err)
		return geom.Rect{}
	}
	f := m.spacesPerEm / float64(upem) / 64
	box := geom.R(
		float64(bounds.Min.X)*f, float64(bounds.Min.Y)*f,
		float64(bounds.Max.X)*f, float64(bounds.Max.Y)*f,
	)
	tracer().Debugf("bbox of %s = %v", id, box)
	m.boxes[id] = box
	return box.Scale(mag)
}

// Draw implements Painter. It rasterizes the symbol outline onto dst with its origin at at.
func (m *SFNTMetrics) Draw(dst draw.Image, id ID, at geom.Point, spatium, mag float64, col color.Color) error {
	if dst == nil {
		return errors.New("no image to draw on")
	}
	ppem := spatium * m.spacesPerEm * mag
	if ppem <= 0 {
		return fmt.Errorf("invalid glyph size %g", ppem)
	}
	m.mx.Lock()
	gid, err := m.glyph(id)
	if err != nil {
		m.mx.Unlock()
		return err
	}
	segs, err := m.font.LoadGlyph(&m.buf, gid, fixed.Int26_6(ppem*64), nil)
	if err != nil {
		m.mx.Unlock()
		return fmt.Errorf("cannot load glyph %d: %w", gid, err)
	}
	// segments become invalid once the buffer is re-used
	segs = append(sfnt.Segments(nil), segs...)
	m.mx.Unlock()

	b := dst.Bounds()
	tx := float32(at.X) - float32(b.Min.X)
	ty := float32(at.Y) - float32(b.Min.Y)
	rast := vector.NewRasterizer(b.Dx(), b.Dy())
	rast.DrawOp = draw.Over
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			rast.MoveTo(tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
		case sfnt.SegmentOpLineTo:
			rast.LineTo(tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
		case sfnt.SegmentOpQuadTo:
			rast.QuadTo(
				tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64,
				tx+float32(seg.Args[1].X)/64, ty+float32(seg.Args[1].Y)/64,
			)
		case sfnt.SegmentOpCubeTo:
			rast.CubeTo(
				tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64,
				tx+float32(seg.Args[1].X)/64, ty+float32(seg.Args[1].Y)/64,
				tx+float32(seg.Args[2].X)/64, ty+float32(seg.Args[2].Y)/64,
			)
		}
	}
	rast.Draw(dst, b, image.NewUniform(col), image.Point{})
	return nil
}

var _ Metrics = (*SFNTMetrics)(nil)
var _ Painter = (*SFNTMetrics)(nil)
