/*
Package geom has the small set of geometric value types the layout packages share.

Coordinates are float64, with the y-axis growing downwards, as on a canvas.
Nominal positions are given in staff spaces (spatium); resolved positions are
given in pixels.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package geom

import "fmt"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Pt is a shortcut for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p with both coordinates multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle given by its top-left corner (Min) and its
// bottom-right corner (Max).
//
// A rectangle with Max.X <= Min.X or Max.Y <= Min.Y is empty. The zero Rect is empty.
type Rect struct {
	Min, Max Point
}

// R is a shortcut for a rectangle spanning (x0,y0)–(x1,y1).
// Corners are swapped if necessary.
func R(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

// Empty reports whether r contains no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Dx is the width of r.
func (r Rect) Dx() float64 {
	return r.Max.X - r.Min.X
}

// Dy is the height of r.
func (r Rect) Dy() float64 {
	return r.Max.Y - r.Min.Y
}

// Translate moves r by p.
func (r Rect) Translate(p Point) Rect {
	return Rect{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}

// Scale multiplies all corners of r by f. f must be positive.
func (r Rect) Scale(f float64) Rect {
	return Rect{Min: r.Min.Scale(f), Max: r.Max.Scale(f)}
}

// Union returns the smallest rectangle containing r and s.
// Empty rectangles do not contribute.
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	if s.Min.X < r.Min.X {
		r.Min.X = s.Min.X
	}
	if s.Min.Y < r.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if s.Max.X > r.Max.X {
		r.Max.X = s.Max.X
	}
	if s.Max.Y > r.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v-%v]", r.Min, r.Max)
}
