package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/scorelayout/clef"
	"github.com/npillmayer/scorelayout/config"
	"github.com/npillmayer/scorelayout/keysig"
	"github.com/npillmayer/scorelayout/score"
	"github.com/npillmayer/scorelayout/sym"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"golang.org/x/text/language"
)

func runLayoutCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	style, err := loadStyle(flags["style"])
	if err != nil {
		fatalf("%v", err)
	}
	ev, err := keyFromArgs(args, flags)
	if err != nil {
		fatalf("%v", err)
	}
	c, err := parseClef(flags["clef"])
	if err != nil {
		fatalf("%v", err)
	}
	ks, err := layoutKey(style, nil, c, ev, !mustFlagBool(flags["hide-naturals"], "hide-naturals"))
	if err != nil {
		fatalf("%v", err)
	}
	if verbose(flags) {
		pterm.Info.Printf("%s, clef %v, spatium %g\n", ks.Name(language.English), c, style.Spatium)
	}
	if err := printSymbols(os.Stdout, ks); err != nil {
		fatalf("%v", err)
	}
}

// layoutKey places a key signature at the start of a single staff and lays it out.
func layoutKey(style config.Style, metrics sym.Metrics, c clef.Type, ev keysig.Event, showNaturals bool) (*keysig.KeySig, error) {
	sc := score.New(style, metrics)
	st := sc.AddStaff("", c)
	if c == clef.Tab {
		st.SetTabStaff(true)
	}
	ks, err := sc.AddKeySig(st, 0, ev)
	if err != nil {
		return nil, err
	}
	ks.SetShowNaturals(showNaturals)
	sc.Layout()
	return ks, nil
}

func printSymbols(w io.Writer, ks *keysig.KeySig) error {
	syms := ks.Symbols()
	fmt.Fprintf(w, "key %v: %d symbols, bbox %v\n", ks.Event(), len(syms), ks.BBox())
	if len(syms) == 0 {
		return nil
	}
	data := symbolTable(syms)
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func symbolTable(syms []keysig.KeySym) [][]string {
	data := [][]string{
		{"#", "Symbol", "Staff spaces", "Pixels"},
	}
	for i, s := range syms {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			s.Sym.Name(),
			s.SPos.String(),
			s.Pos.String(),
		})
	}
	return data
}
