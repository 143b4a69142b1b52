package sym

import (
	"image/color"
	"image/draw"

	"github.com/npillmayer/scorelayout/geom"
)

// Metrics provides symbol bounding boxes.
//
// BBox returns the box of a symbol in staff spaces, scaled by magnification mag.
// Unknown symbols yield an empty rectangle.
type Metrics interface {
	BBox(id ID, mag float64) geom.Rect
}

// Painter draws symbols onto an image.
//
// at is the symbol origin in pixels, spatium is the size of a staff space in pixels.
type Painter interface {
	Draw(dst draw.Image, id ID, at geom.Point, spatium, mag float64, col color.Color) error
}

// bravura holds SMuFL bounding boxes of the Bravura font: south-west and
// north-east corners, y pointing upwards.
var bravura = map[ID][4]float64{
	NaturalSym:     {0, -1.34, 0.672, 1.364},
	SharpSym:       {0, -1.392, 0.996, 1.4},
	FlatSym:        {0, -0.7, 0.904, 1.756},
	DoubleSharpSym: {0, -0.5, 0.988, 0.508},
	DoubleFlatSym:  {0, -0.7, 1.644, 1.748},
}

// StaticMetrics answers bounding boxes from a built-in table.
type StaticMetrics struct{}

// BBox implements Metrics.
func (StaticMetrics) BBox(id ID, mag float64) geom.Rect {
	b, ok := bravura[id]
	if !ok {
		return geom.Rect{}
	}
	return geom.R(b[0], -b[3], b[2], -b[1]).Scale(mag)
}

var _ Metrics = StaticMetrics{}
