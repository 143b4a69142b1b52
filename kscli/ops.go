package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/scorelayout/clef"
	"github.com/npillmayer/scorelayout/keysig"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
)

// keyOp drops a new key onto the key signature, e.g. "key:3" or "key:3:-2".
func keyOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("usage: key:<accidentals>[:<naturals>]"), false
	}
	acc, err := strconv.Atoi(op.arg(0))
	if err != nil {
		return fmt.Errorf("accidentals not numeric: %v", op.arg(0)), false
	}
	nat := 0
	if op.arg(1) != "" {
		if nat, err = strconv.Atoi(op.arg(1)); err != nil {
			return fmt.Errorf("naturals not numeric: %v", op.arg(1)), false
		}
	}
	ev := keysig.NewEvent(acc, nat)
	if err := ev.Validate(); err != nil {
		pterm.Warning.Printf("%v, clamping\n", err)
		ev = ev.Clamped()
	}
	dropped := keysig.New(nil)
	dropped.SetEvent(ev)
	if intp.ks.Drop(keysig.DropData{Element: dropped}) == nil {
		return errors.New("key signature rejected the drop"), false
	}
	tracer().Infof("key changed to %v", intp.ks.Event())
	return nil, false
}

// clefOp places a clef at the start of the staff, e.g. "clef:F".
func clefOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		pterm.Printf("clefs: %s\n", clefList())
		return nil, false
	}
	c, err := clef.Parse(op.arg(0))
	if err != nil {
		return err, false
	}
	intp.staff.SetClef(0, c)
	intp.score.SetLayoutAll(true)
	tracer().Infof("clef set to %s", c)
	return nil, false
}

func clefList() string {
	types := clef.Types()
	tags := make([]string, len(types))
	for i, c := range types {
		tags[i] = c.String()
	}
	return strings.Join(tags, " ")
}

func naturalsOp(intp *Intp, op *Op) (error, bool) {
	on, err := onOff(op)
	if err != nil {
		return err, false
	}
	return intp.ks.UndoSetShowNaturals(on), false
}

func courtesyOp(intp *Intp, op *Op) (error, bool) {
	on, err := onOff(op)
	if err != nil {
		return err, false
	}
	return intp.ks.UndoSetShowCourtesy(on), false
}

// tabOp switches the staff between tablature and standard notation.
func tabOp(intp *Intp, op *Op) (error, bool) {
	on, err := onOff(op)
	if err != nil {
		return err, false
	}
	intp.staff.SetTabStaff(on)
	intp.score.SetLayoutAll(true)
	return nil, false
}

func onOff(op *Op) (bool, error) {
	switch strings.ToLower(op.arg(0)) {
	case "on", "1", "true", "yes":
		return true, nil
	case "off", "0", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("%s expects 'on' or 'off', have %q", opNames[op.code], op.arg(0))
}

func nameOp(intp *Intp, op *Op) (error, bool) {
	lang := language.English
	if !op.noArg() {
		var err error
		if lang, err = language.Parse(op.arg(0)); err != nil {
			return err, false
		}
	}
	name := intp.ks.Name(lang)
	if name == "" {
		name = "(no name)"
	}
	pterm.Printf("%s\n", name)
	return nil, false
}

func undoOp(intp *Intp, op *Op) (error, bool) {
	name, err := intp.score.Undo()
	if err != nil {
		return err, false
	}
	pterm.Info.Printf("undid %s\n", name)
	return nil, false
}

func redoOp(intp *Intp, op *Op) (error, bool) {
	name, err := intp.score.Redo()
	if err != nil {
		return err, false
	}
	pterm.Info.Printf("redid %s\n", name)
	return nil, false
}
