package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/scorelayout/keysig"
	"github.com/pterm/pterm"
)

func layoutOp(intp *Intp, op *Op) (error, bool) {
	intp.score.Layout()
	printLayout(intp.ks)
	return nil, false
}

func printLayout(ks *keysig.KeySig) {
	syms := ks.Symbols()
	pterm.Printf("key %v has %d symbols\n", ks.Event(), len(syms))
	if len(syms) == 0 {
		return
	}
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
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("%v", err)
	}
	sp := ks.Space()
	pterm.Printf("bbox %v, left margin %.2f, width %.2f\n", ks.BBox(), sp.LeftWidth, sp.Width)
}

func xmlOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.ks.Write(os.Stdout); err != nil {
		return err, false
	}
	pterm.Println()
	return nil, false
}
