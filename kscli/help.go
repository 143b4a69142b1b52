package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg(0))
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "key", "keys":
		pterm.Info.Println("key:<accidentals>[:<naturals>]")
		pterm.Println(`
	Changes the key. Accidentals are sharps if positive, flats if negative.
	Naturals cancel the accidentals of the previous key, with the same sign
	convention:

	    key:3:-2    A major, coming from B flat major

	Naturals for accidentals on the same side as the new key are not shown,
	as the new accidentals replace them. The change is undoable.
	`)
	case "clef", "clefs":
		pterm.Info.Println("clef:<tag>")
		pterm.Printf("\n\tSets the clef of the staff. Known clefs: %s\n\n", clefList())
	case "flags", "naturals", "courtesy", "tab":
		pterm.Info.Println("naturals:on|off  courtesy:on|off  tab:on|off")
		pterm.Println(`
	naturals  shows or hides cancelling naturals (undoable)
	courtesy  shows or hides the courtesy key signature (undoable)
	tab       turns the staff into a tablature staff, which has no key signatures
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	key:<acc>[:<nat>]   change the key
	clef:<tag>          change the clef
	naturals:on|off     show cancelling naturals
	courtesy:on|off     show courtesy key signature
	tab:on|off          tablature staff
	layout              lay out and print the symbols
	xml                 print the markup of the key signature
	name[:<lang>]       print the key's name, e.g. name:de
	undo, redo          undo or redo the last change
	help[:<topic>]      topics: key, clef, flags
	quit                leave
	`)
	}
}
