/*
Package config reads the layout style from TOML.

A style file looks like this:

	spatium = 20.0           # pixels per staff space
	mag = 1.0                # magnification
	keysig_left_margin = 0.5 # staff spaces

	[font]
	path = "Bravura.otf"
	spaces_per_em = 4.0
	codepoints = "smufl"     # or "ascii" for text fonts

	[trace]
	level = "Info"

Missing entries keep their defaults.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/scorelayout/sym"
)

// tracer traces with key 'scorelayout.config'
func tracer() tracing.Trace {
	return tracing.Select("scorelayout.config")
}

// Style holds the layout parameters shared by all elements of a score.
type Style struct {
	Spatium          float64 `toml:"spatium"`
	Mag              float64 `toml:"mag"`
	KeySigLeftMargin float64 `toml:"keysig_left_margin"`
	Font             Font    `toml:"font"`
	Trace            Trace   `toml:"trace"`
}

// Font selects the music font.
type Font struct {
	Path        string  `toml:"path"`
	SpacesPerEm float64 `toml:"spaces_per_em"`
	CodePoints  string  `toml:"codepoints"`
}

// Trace sets the trace level of the tools.
type Trace struct {
	Level string `toml:"level"`
}

// Default returns the built-in style.
func Default() Style {
	return Style{
		Spatium:          20.0,
		Mag:              1.0,
		KeySigLeftMargin: 0.5,
		Font: Font{
			SpacesPerEm: 4.0,
			CodePoints:  "smufl",
		},
		Trace: Trace{Level: "Info"},
	}
}

// Load reads a style file. Values not present in the file keep their defaults.
func Load(path string) (Style, error) {
	f, err := os.Open(path)
	if err != nil {
		return Style{}, err
	}
	defer f.Close()
	st, err := Decode(f)
	if err != nil {
		return Style{}, fmt.Errorf("style %s: %w", path, err)
	}
	tracer().Infof("loaded style from %s", path)
	return st, nil
}

// Decode reads a style from TOML input.
func Decode(r io.Reader) (Style, error) {
	st := Default()
	md, err := toml.NewDecoder(r).Decode(&st)
	if err != nil {
		return Style{}, err
	}
	for _, key := range md.Undecoded() {
		tracer().Errorf("style: ignoring unknown key %s", key.String())
	}
	if err := st.Validate(); err != nil {
		return Style{}, err
	}
	return st, nil
}

// Validate checks that the style can be used for layout.
func (st Style) Validate() error {
	if st.Spatium <= 0 {
		return fmt.Errorf("spatium must be positive, is %g", st.Spatium)
	}
	if st.Mag <= 0 {
		return fmt.Errorf("mag must be positive, is %g", st.Mag)
	}
	if st.KeySigLeftMargin < 0 {
		return fmt.Errorf("keysig_left_margin must not be negative, is %g", st.KeySigLeftMargin)
	}
	if st.Font.SpacesPerEm <= 0 {
		return fmt.Errorf("font.spaces_per_em must be positive, is %g", st.Font.SpacesPerEm)
	}
	switch strings.ToLower(st.Font.CodePoints) {
	case "", "smufl", "ascii":
	default:
		return fmt.Errorf("font.codepoints must be 'smufl' or 'ascii', is %q", st.Font.CodePoints)
	}
	switch st.Trace.Level {
	case "", "Debug", "Info", "Error":
	default:
		return fmt.Errorf("trace.level must be Debug, Info or Error, is %q", st.Trace.Level)
	}
	return nil
}

// ApplyTraceLevel sets the configured level on a tracer.
func (st Style) ApplyTraceLevel(t tracing.Trace) {
	switch st.Trace.Level {
	case "Debug":
		t.SetTraceLevel(tracing.LevelDebug)
	case "Error":
		t.SetTraceLevel(tracing.LevelError)
	default:
		t.SetTraceLevel(tracing.LevelInfo)
	}
}

// CodePoints returns the symbol mapping selected for the music font.
func (st Style) CodePoints() sym.CodePoints {
	if strings.EqualFold(st.Font.CodePoints, "ascii") {
		return sym.ASCII()
	}
	return sym.SMuFL()
}
