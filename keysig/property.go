package keysig

import "fmt"

// PropertyID identifies a property for generic get/set, as used by undo/redo.
type PropertyID int

// Properties of key signatures.
const (
	PropVisible PropertyID = iota + 1
	PropShowCourtesy
	PropShowNaturals
)

func (id PropertyID) String() string {
	switch id {
	case PropVisible:
		return "visible"
	case PropShowCourtesy:
		return "showCourtesySig"
	case PropShowNaturals:
		return "showNaturals"
	}
	return fmt.Sprintf("property(%d)", int(id))
}

// GetProperty reads a property. It returns false for properties a key signature
// does not have.
func (ks *KeySig) GetProperty(id PropertyID) (any, bool) {
	switch id {
	case PropShowCourtesy:
		return ks.showCourtesy, true
	case PropShowNaturals:
		return ks.showNaturals, true
	case PropVisible:
		return ks.visible, true
	}
	return nil, false
}

// SetProperty writes a property. On success the document is told to re-layout
// everything, and ks is no longer considered generated by the system.
// Unknown properties and values of the wrong type are rejected.
func (ks *KeySig) SetProperty(id PropertyID, v any) bool {
	b, ok := v.(bool)
	if !ok {
		tracer().Errorf("property %s: expected bool value, have %T", id, v)
		return false
	}
	switch id {
	case PropShowCourtesy:
		ks.SetShowCourtesy(b)
	case PropShowNaturals:
		ks.SetShowNaturals(b)
	case PropVisible:
		ks.SetVisible(b)
	default:
		return false
	}
	if ks.doc != nil {
		ks.doc.SetLayoutAll(true)
	}
	ks.SetGenerated(false)
	return true
}

// PropertyDefault returns the default value of a property.
func (ks *KeySig) PropertyDefault(id PropertyID) (any, bool) {
	switch id {
	case PropShowCourtesy, PropShowNaturals, PropVisible:
		return true, true
	}
	return nil, false
}

// UndoSetShowCourtesy changes the courtesy flag through the document's undo stack.
func (ks *KeySig) UndoSetShowCourtesy(v bool) error {
	return ks.undoChangeProperty(PropShowCourtesy, v)
}

// UndoSetShowNaturals changes the naturals flag through the document's undo stack.
func (ks *KeySig) UndoSetShowNaturals(v bool) error {
	return ks.undoChangeProperty(PropShowNaturals, v)
}

func (ks *KeySig) undoChangeProperty(id PropertyID, v any) error {
	if ks.doc == nil {
		return ErrNoDocument
	}
	ks.doc.UndoChangeProperty(ks, id, v)
	return nil
}
