package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/scorelayout"
	"github.com/npillmayer/scorelayout/geom"
	"github.com/npillmayer/scorelayout/keysig"
	"github.com/npillmayer/scorelayout/sym"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	style, err := loadStyle(flags["style"])
	if err != nil {
		fatalf("%v", err)
	}
	if mustFlagBool(flags["ascii"], "ascii") {
		style.Font.CodePoints = "ascii"
	}
	if sp := mustFlagInt(flags["spatium"], "spatium"); sp > 0 {
		style.Spatium = float64(sp)
	}
	mf, err := scorelayout.LoadMusicFont(fontPath, style)
	if err != nil {
		fatalf("%v", err)
	}
	if missing := mf.Missing(); len(missing) > 0 {
		pterm.Warning.Printf("font %s has no glyphs for %v\n", mf.Fontname, missing)
	}
	ev, err := keyFromArgs(args, flags)
	if err != nil {
		fatalf("%v", err)
	}
	c, err := parseClef(flags["clef"])
	if err != nil {
		fatalf("%v", err)
	}
	ks, err := layoutKey(style, mf.Metrics, c, ev, !mustFlagBool(flags["hide-naturals"], "hide-naturals"))
	if err != nil {
		fatalf("%v", err)
	}
	if verbose(flags) {
		if err := printSymbols(os.Stdout, ks); err != nil {
			fatalf("%v", err)
		}
	}

	width := mustFlagInt(flags["width"], "width")
	height := mustFlagInt(flags["height"], "height")
	if width <= 0 || height <= 0 {
		fatalf("image size must be positive, is %dx%d", width, height)
	}
	img := renderKeySig(ks, mf.Metrics, style.Spatium, width, height, mustFlagBool(flags["show-bbox"], "show-bbox"))
	if img == nil {
		fatalf("cannot render key signature")
	}
	outPath := mustFlagString(flags["output"], "output")
	if err := writePNG(img, outPath); err != nil {
		fatalf("%v", err)
	}
	pterm.Success.Printf("wrote %s (%dx%d, %d symbols)\n", outPath, width, height, len(ks.Symbols()))
}

// renderKeySig draws a five-line staff with the key signature at its start.
// The staff is centered vertically; the key signature starts one staff space
// right of the left edge.
func renderKeySig(ks *keysig.KeySig, p sym.Painter, spatium float64, width, height int, showBBox bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)

	origin := staffOrigin(spatium, height)
	for line := 0; line < 5; line++ {
		y := int(origin.Y + float64(line)*spatium)
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	if err := ks.Draw(img, p, origin, color.Black); err != nil {
		tracer().Errorf("%v", err)
		return nil
	}
	if showBBox && !ks.BBox().Empty() {
		box := ks.BBox().Translate(origin)
		drawRectOutline(img, int(box.Min.X), int(box.Min.Y), int(box.Max.X+0.5), int(box.Max.Y+0.5), color.RGBA{255, 0, 0, 255})
	}
	return img
}

// staffOrigin is the left end of the top staff line.
func staffOrigin(spatium float64, height int) geom.Point {
	return geom.Pt(spatium, float64(height)/2-2*spatium)
}

func writePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	if img == nil {
		return
	}
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	b := img.Bounds()
	minX, minY = max(minX, b.Min.X), max(minY, b.Min.Y)
	maxX, maxY = min(maxX, b.Max.X), min(maxY, b.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}
	// top and bottom
	for x := minX; x < maxX; x++ {
		img.SetRGBA(x, minY, c)
		img.SetRGBA(x, maxY-1, c)
	}
	// left and right
	for y := minY; y < maxY; y++ {
		img.SetRGBA(minX, y, c)
		img.SetRGBA(maxX-1, y, c)
	}
}
