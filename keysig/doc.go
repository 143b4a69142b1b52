/*
Package keysig implements the key signature element of a score.

A key signature is described by an Event: a number of accidentals (positive for
sharps, negative for flats), a number of naturals cancelling the previous key
(same sign convention), or a reference to a custom key signature registered with
the document. Layout turns an Event into a list of KeySym records, i.e. symbols
with positions on the staff, and a bounding box:

	ev := keysig.NewEvent(3, -2) // 3 sharps, cancelling 2 flats
	syms, bbox := keysig.Layout(ev, nil, true, keysig.Context{
		Clef:    clef.G.Lines(),
		Spatium: 20,
		Mag:     1,
		Metrics: sym.StaticMetrics{},
	})

Layout is deterministic and has no side effects. The KeySig element wraps it
with the surrounding responsibilities: properties for undo/redo, drag and drop,
and reading and writing the element's markup.

The element depends on the score only through the Document and Staff
interfaces. Package score provides an implementation.

# Markup

	<KeySig>
	  <accidental>3</accidental>
	  <natural>-2</natural>
	  <KeySym>
	    <sym>accidentalNatural</sym>
	    <pos x="0" y="2"></pos>
	  </KeySym>
	  …
	  <showCourtesySig>1</showCourtesySig>
	  <showNaturals>1</showNaturals>
	</KeySig>

Custom key signatures write <custom>index</custom> instead of the counts.
Old files may carry a packed <subtype> integer instead, which is honoured if
no valid key could be read otherwise.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package keysig

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'scorelayout.keysig'
func tracer() tracing.Trace {
	return tracing.Select("scorelayout.keysig")
}
