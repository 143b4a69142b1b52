package keysig

// ElementKind is the closed set of element kinds of a score.
type ElementKind int

// Element kinds.
const (
	KindUnknown ElementKind = iota
	KindClef
	KindKeySig
	KindTimeSig
	KindNote
	KindRest
	KindBarLine
	KindText
)

func (k ElementKind) String() string {
	switch k {
	case KindClef:
		return "Clef"
	case KindKeySig:
		return "KeySig"
	case KindTimeSig:
		return "TimeSig"
	case KindNote:
		return "Note"
	case KindRest:
		return "Rest"
	case KindBarLine:
		return "BarLine"
	case KindText:
		return "Text"
	}
	return "Unknown"
}

// Element is anything which may be dropped onto a score element.
type Element interface {
	Kind() ElementKind
}

// Kind returns KindKeySig.
func (ks *KeySig) Kind() ElementKind {
	return KindKeySig
}

// Modifiers are keyboard modifiers held during a drop.
type Modifiers uint

// Keyboard modifiers.
const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
)

// DropData is the payload of a drag-and-drop operation.
type DropData struct {
	Element   Element
	Modifiers Modifiers
}

// AcceptDrop tells if e may be dropped onto ks. Only key signatures are accepted.
func (ks *KeySig) AcceptDrop(e Element) bool {
	return e != nil && e.Kind() == KindKeySig
}

// Drop applies a dropped key signature.
//
// A custom key signature which is not yet registered is handed over to the
// document's registry. With the control modifier the key changes for the staff
// of ks only, otherwise for all staves. Changes are made through the document's
// undo stack as a single macro.
//
// Drop returns ks, or nil if the dropped element is not a key signature or ks is
// not part of a document.
func (ks *KeySig) Drop(data DropData) Element {
	dropped, ok := data.Element.(*KeySig)
	if !ok || !ks.AcceptDrop(data.Element) {
		tracer().Debugf("rejecting drop of %v onto key signature", kindOf(data.Element))
		return nil
	}
	if ks.doc == nil {
		tracer().Errorf("drop onto key signature without document")
		return nil
	}
	k := dropped.Event()
	if k.Custom() {
		idx := ks.doc.CustomKeySigIdx(dropped)
		if idx < 0 {
			dropped.SetDocument(ks.doc)
			idx = ks.doc.AddCustomKeySig(dropped)
		}
		k = CustomEvent(idx)
		dropped.SetEvent(k)
	}
	tick := ks.Tick()
	ks.doc.BeginMacro("change key signature")
	defer ks.doc.EndMacro()
	if data.Modifiers&ModControl != 0 {
		if !k.Equal(ks.event) {
			ks.doc.UndoChangeKeySig(ks.staff, tick, k)
		}
	} else {
		for _, st := range ks.doc.Staves() {
			ks.doc.UndoChangeKeySig(st, tick, k)
		}
	}
	return ks
}

func kindOf(e Element) ElementKind {
	if e == nil {
		return KindUnknown
	}
	return e.Kind()
}
