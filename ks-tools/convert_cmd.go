package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/scorelayout/keysig"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runConvertCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	in := os.Stdin
	if path := strings.TrimSpace(args["file"].Value); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fatalf("%v", err)
		}
		defer f.Close()
		in = f
	}
	ks, issues, err := convert(in)
	if err != nil {
		fatalf("%v", err)
	}
	major := 0
	for _, e := range issues {
		if e.Severity == keysig.SeverityMajor {
			major++
			pterm.Warning.Println(e.Error())
		} else {
			pterm.Info.Println(e.Error())
		}
	}
	if major > 0 && mustFlagBool(flags["strict"], "strict") {
		fatalf("%d problem(s) of major severity", major)
	}

	out := io.Writer(os.Stdout)
	if path := strings.TrimSpace(mustFlagString(flags["output"], "output")); path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			fatalf("cannot create output file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := ks.Write(out); err != nil {
		fatalf("%v", err)
	}
	if out == os.Stdout {
		fmt.Println()
	}
	if verbose(flags) {
		pterm.Success.Printf("converted key %v with %d issue(s)\n", ks.Event(), len(issues))
	}
}

// convert reads a key signature from markup, collecting the problems found on
// the way. The key signature is not part of a document, so custom symbols are
// written as read.
func convert(r io.Reader) (*keysig.KeySig, []keysig.ReadError, error) {
	var issues []keysig.ReadError
	ks := keysig.New(nil)
	err := ks.Read(r, func(e keysig.ReadError) {
		issues = append(issues, e)
	})
	if err != nil {
		return nil, issues, fmt.Errorf("reading markup: %w", err)
	}
	return ks, issues, nil
}
