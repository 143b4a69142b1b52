package score

import (
	"errors"

	"github.com/npillmayer/scorelayout/keysig"
)

// Errors returned by Undo and Redo.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// scoreOp is an undoable change to a score. apply returns false if the change
// had no effect; such operations are not recorded.
type scoreOp interface {
	apply(s *Score) bool
	undo(s *Score)
}

// macro is the unit of undo and redo.
type macro struct {
	name string
	ops  []scoreOp
}

type undoStack struct {
	done   []*macro
	undone []*macro
	open   *macro
	depth  int
}

// update applies op and records it, either in the open macro or as a
// transaction of its own.
func (s *Score) update(name string, op scoreOp) bool {
	if !op.apply(s) {
		tracer().Debugf("%s: no change", name)
		return false
	}
	u := &s.undo
	if u.open != nil {
		u.open.ops = append(u.open.ops, op)
	} else {
		u.done = append(u.done, &macro{name: name, ops: []scoreOp{op}})
	}
	u.undone = u.undone[:0]
	s.layoutAll = true
	return true
}

// BeginMacro starts a group of changes which are undone as a whole.
// Macros may be nested; only the outermost one is recorded.
func (s *Score) BeginMacro(name string) {
	u := &s.undo
	u.depth++
	if u.depth == 1 {
		u.open = &macro{name: name}
	}
}

// EndMacro closes the group started by BeginMacro. Empty macros are discarded.
func (s *Score) EndMacro() {
	u := &s.undo
	if u.depth == 0 {
		tracer().Errorf("EndMacro without BeginMacro")
		return
	}
	u.depth--
	if u.depth > 0 {
		return
	}
	if len(u.open.ops) > 0 {
		u.done = append(u.done, u.open)
		tracer().Debugf("recorded %q with %d change(s)", u.open.name, len(u.open.ops))
	}
	u.open = nil
}

// CanUndo tells whether there is a transaction to undo.
func (s *Score) CanUndo() bool {
	return len(s.undo.done) > 0 && s.undo.open == nil
}

// CanRedo tells whether there is an undone transaction to redo.
func (s *Score) CanRedo() bool {
	return len(s.undo.undone) > 0 && s.undo.open == nil
}

// Undo reverts the last transaction and returns its name.
func (s *Score) Undo() (string, error) {
	if !s.CanUndo() {
		return "", ErrNothingToUndo
	}
	u := &s.undo
	m := u.done[len(u.done)-1]
	u.done = u.done[:len(u.done)-1]
	for i := len(m.ops) - 1; i >= 0; i-- {
		m.ops[i].undo(s)
	}
	u.undone = append(u.undone, m)
	s.layoutAll = true
	tracer().Infof("undo %q", m.name)
	return m.name, nil
}

// Redo re-applies the last undone transaction and returns its name.
func (s *Score) Redo() (string, error) {
	if !s.CanRedo() {
		return "", ErrNothingToRedo
	}
	u := &s.undo
	m := u.undone[len(u.undone)-1]
	u.undone = u.undone[:len(u.undone)-1]
	for _, op := range m.ops {
		op.apply(s)
	}
	u.done = append(u.done, m)
	s.layoutAll = true
	tracer().Infof("redo %q", m.name)
	return m.name, nil
}

// --- Change key signature --------------------------------------------------

type changeKeySigOp struct {
	staff   *Staff
	tick    int
	ev      keysig.Event
	old     keysig.Event
	created bool
}

// UndoChangeKeySig sets the key of a staff at tick through the undo stack.
// A key signature element is created if there is none at tick.
func (s *Score) UndoChangeKeySig(st keysig.Staff, tick int, ev keysig.Event) {
	if err := s.ChangeKeySig(st, tick, ev); err != nil {
		tracer().Errorf("change key signature: %v", err)
	}
}

// ChangeKeySig is like UndoChangeKeySig, but reports unknown staves.
func (s *Score) ChangeKeySig(st keysig.Staff, tick int, ev keysig.Event) error {
	staff, err := s.findStaff(st)
	if err != nil {
		return err
	}
	s.update("change key signature", &changeKeySigOp{staff: staff, tick: tick, ev: ev})
	return nil
}

func (op *changeKeySigOp) apply(s *Score) bool {
	ks := op.staff.keys[op.tick]
	op.created = ks == nil
	if op.created {
		ks = keysig.New(s)
		ks.Attach(op.staff, op.tick)
	}
	op.old = ks.Event()
	if !op.created && op.old.Equal(op.ev) {
		return false
	}
	ks.ChangeKeySigEvent(op.ev)
	if !ks.Event().Equal(op.ev) {
		// unknown custom key signature
		return false
	}
	if op.created {
		op.staff.keys[op.tick] = ks
	}
	return true
}

func (op *changeKeySigOp) undo(s *Score) {
	if op.created {
		delete(op.staff.keys, op.tick)
		return
	}
	if ks := op.staff.keys[op.tick]; ks != nil {
		ks.ChangeKeySigEvent(op.old)
	}
}

// --- Change property -------------------------------------------------------

type changePropertyOp struct {
	ks  *keysig.KeySig
	id  keysig.PropertyID
	v   any
	old any
}

// UndoChangeProperty sets a property of a key signature through the undo stack.
func (s *Score) UndoChangeProperty(ks *keysig.KeySig, id keysig.PropertyID, v any) {
	s.update("change "+id.String(), &changePropertyOp{ks: ks, id: id, v: v})
}

func (op *changePropertyOp) apply(s *Score) bool {
	old, ok := op.ks.GetProperty(op.id)
	if !ok {
		return false
	}
	if b, isBool := op.v.(bool); isBool && old == b {
		return false
	}
	op.old = old
	return op.ks.SetProperty(op.id, op.v)
}

func (op *changePropertyOp) undo(s *Score) {
	op.ks.SetProperty(op.id, op.old)
}
