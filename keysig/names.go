package keysig

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// keyNames are indexed by accidental count + 7.
var keyNames = [2*MaxAccidentals + 1]string{
	"Cb major, Ab minor",
	"Gb major, Eb minor",
	"Db major, Bb minor",
	"Ab major, F minor",
	"Eb major, C minor",
	"Bb major, G minor",
	"F major, D minor",
	"C major, A minor",
	"G major, E minor",
	"D major, B minor",
	"A major, F# minor",
	"E major, C# minor",
	"B major, G# minor",
	"F# major, D# minor",
	"C# major, A# minor",
}

var translations = map[language.Tag][2*MaxAccidentals + 1]string{
	language.German: {
		"Ces-Dur, as-Moll",
		"Ges-Dur, es-Moll",
		"Des-Dur, b-Moll",
		"As-Dur, f-Moll",
		"Es-Dur, c-Moll",
		"B-Dur, g-Moll",
		"F-Dur, d-Moll",
		"C-Dur, a-Moll",
		"G-Dur, e-Moll",
		"D-Dur, h-Moll",
		"A-Dur, fis-Moll",
		"E-Dur, cis-Moll",
		"H-Dur, gis-Moll",
		"Fis-Dur, dis-Moll",
		"Cis-Dur, ais-Moll",
	},
	language.French: {
		"Do bémol majeur, la bémol mineur",
		"Sol bémol majeur, mi bémol mineur",
		"Ré bémol majeur, si bémol mineur",
		"La bémol majeur, fa mineur",
		"Mi bémol majeur, do mineur",
		"Si bémol majeur, sol mineur",
		"Fa majeur, ré mineur",
		"Do majeur, la mineur",
		"Sol majeur, mi mineur",
		"Ré majeur, si mineur",
		"La majeur, fa dièse mineur",
		"Mi majeur, do dièse mineur",
		"Si majeur, sol dièse mineur",
		"Fa dièse majeur, ré dièse mineur",
		"Do dièse majeur, la dièse mineur",
	},
}

var keyCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for i, name := range keyNames {
		if err := b.SetString(language.English, name, name); err != nil {
			tracer().Errorf("key name catalog: %v", err)
		}
		for tag, names := range translations {
			if err := b.SetString(tag, name, names[i]); err != nil {
				tracer().Errorf("key name catalog: %v", err)
			}
		}
	}
	return b
}

// KeyName returns the major and minor key for a number of accidentals
// (sharps > 0, flats < 0), translated to lang if a translation exists.
// The result is empty for counts outside [-7,7].
func KeyName(accidentals int, lang language.Tag) string {
	if !validCount(accidentals) {
		return ""
	}
	p := message.NewPrinter(lang, message.Catalog(keyCatalog))
	return p.Sprintf(keyNames[accidentals+MaxAccidentals])
}

// Name returns the key name of ks in lang. Custom key signatures have no name.
func (ks *KeySig) Name(lang language.Tag) string {
	if ks.IsCustom() || ks.event.Invalid() {
		return ""
	}
	return KeyName(ks.event.Accidentals(), lang)
}
