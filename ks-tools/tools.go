/*
Command ks-tools is a batch tool for key signatures.

	ks-tools layout 3 --naturals -2 --clef F
	ks-tools view Bravura.otf -- -4 --output eflat.png
	ks-tools convert old-keysig.xml --output keysig.xml

The layout command prints the symbol positions of a key, the view command
renders a key onto a staff as PNG, and the convert command reads key signature
markup, reports problems and writes it in its current form.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/scorelayout/clef"
	"github.com/npillmayer/scorelayout/config"
	"github.com/npillmayer/scorelayout/keysig"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'scorelayout.tools'
func tracer() tracing.Trace {
	return tracing.Select("scorelayout.tools")
}

func main() {
	commando.
		SetExecutableName("ks-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for key signature layout, rendering and markup conversion.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("layout").
		SetDescription("Lay out a key signature and print its symbols with their positions.").
		SetShortDescription("layout key signature").
		AddArgument("accidentals", "number of accidentals (-7 … 7, negative for flats)", "0").
		AddFlag("naturals,n", "key before the change, drawn as naturals (-7 … 7)", commando.Int, 0).
		AddFlag("clef,c", "clef tag (G, F, C3, TAB, …)", commando.String, "G").
		AddFlag("hide-naturals", "do not show naturals", commando.Bool, nil).
		AddFlag("style,s", "TOML style file", commando.String, "-").
		SetAction(runLayoutCommand)

	commando.
		Register("view").
		SetDescription("Render a key signature on a staff to a PNG image.").
		SetShortDescription("key signature to image").
		AddArgument("font", "music font file path (TTF or OTF)", "").
		AddArgument("accidentals", "number of accidentals (-7 … 7, negative for flats)", "0").
		AddFlag("naturals,n", "key before the change, drawn as naturals (-7 … 7)", commando.Int, 0).
		AddFlag("clef,c", "clef tag (G, F, C3, TAB, …)", commando.String, "G").
		AddFlag("hide-naturals", "do not show naturals", commando.Bool, nil).
		AddFlag("style,s", "TOML style file", commando.String, "-").
		AddFlag("ascii,a", "font maps symbols to ASCII instead of SMuFL code points", commando.Bool, nil).
		AddFlag("output,o", "output PNG file", commando.String, "ks-tools-view.png").
		AddFlag("spatium,p", "staff space in pixels (0 uses the style)", commando.Int, 0).
		AddFlag("show-bbox,B", "draw red bounding-box outline of the key signature", commando.Bool, nil).
		AddFlag("width,W", "image width in pixels", commando.Int, 320).
		AddFlag("height,H", "image height in pixels", commando.Int, 160).
		SetAction(runViewCommand)

	commando.
		Register("convert").
		SetDescription("Read key signature markup, report problems and write it in current form.").
		SetShortDescription("convert markup").
		AddArgument("file", "markup file containing a <KeySig> element ('-' for stdin)", "-").
		AddFlag("output,o", "output file ('-' for stdout)", commando.String, "-").
		AddFlag("strict", "fail on problems of major severity", commando.Bool, nil).
		SetAction(runConvertCommand)

	commando.Parse(nil)
}

// keyFromArgs reads the key of a layout or view command.
func keyFromArgs(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) (keysig.Event, error) {
	acc, err := parseCount(args["accidentals"].Value)
	if err != nil {
		return keysig.InvalidEvent(), fmt.Errorf("accidentals: %w", err)
	}
	ev := keysig.NewEvent(acc, mustFlagInt(flags["naturals"], "naturals"))
	if err := ev.Validate(); err != nil {
		return keysig.InvalidEvent(), err
	}
	return ev, nil
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseClef(flag commando.FlagValue) (clef.Type, error) {
	tag, err := flag.GetString()
	if err != nil {
		return clef.G, err
	}
	return clef.Parse(strings.TrimSpace(tag))
}

// loadStyle returns the default style, or the style from the file named by the
// style flag.
func loadStyle(flag commando.FlagValue) (config.Style, error) {
	path, err := flag.GetString()
	if err != nil {
		return config.Style{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func verbose(flags map[string]commando.FlagValue) bool {
	v, ok := flags["verbose"]
	if !ok {
		return false
	}
	b, err := v.GetBool()
	return err == nil && b
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ks-tools: "+format+"\n", args...)
	os.Exit(1)
}
