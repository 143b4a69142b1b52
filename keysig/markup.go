package keysig

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/scorelayout/geom"
	"github.com/npillmayer/scorelayout/sym"
)

// Write writes ks as a <KeySig> element, indented by two spaces.
func (ks *KeySig) Write(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := ks.WriteXML(enc); err != nil {
		return err
	}
	return enc.Flush()
}

// WriteXML writes ks to an encoder which may be positioned anywhere inside a
// larger document.
func (ks *KeySig) WriteXML(enc *xml.Encoder) error {
	w := markupWriter{enc: enc}
	start := xml.StartElement{Name: xml.Name{Local: "KeySig"}}
	w.token(start)
	if !ks.visible {
		w.tag("visible", 0)
	}
	if ks.event.Custom() {
		w.tag("custom", ks.event.CustomIndex())
	} else {
		w.tag("accidental", ks.event.Accidentals())
		if ks.event.Naturals() != 0 {
			w.tag("natural", ks.event.Naturals())
		}
	}
	for _, s := range ks.symbols {
		w.token(xml.StartElement{Name: xml.Name{Local: "KeySym"}})
		w.tag("sym", s.Sym.Name())
		w.point("pos", s.SPos)
		w.token(xml.EndElement{Name: xml.Name{Local: "KeySym"}})
	}
	w.tag("showCourtesySig", boolInt(ks.showCourtesy))
	w.tag("showNaturals", boolInt(ks.showNaturals))
	w.token(start.End())
	return w.err
}

// markupWriter remembers the first error and ignores all writes after it.
type markupWriter struct {
	enc *xml.Encoder
	err error
}

func (w *markupWriter) token(t xml.Token) {
	if w.err == nil {
		w.err = w.enc.EncodeToken(t)
	}
}

func (w *markupWriter) tag(name string, v any) {
	if w.err == nil {
		w.err = w.enc.EncodeElement(v, xml.StartElement{Name: xml.Name{Local: name}})
	}
}

func (w *markupWriter) point(name string, p geom.Point) {
	start := xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "x"}, Value: formatFloat(p.X)},
			{Name: xml.Name{Local: "y"}, Value: formatFloat(p.Y)},
		},
	}
	w.token(start)
	w.token(start.End())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Read reads a <KeySig> element. Structural problems, like unknown tags or
// unparsable values, are reported to hook and skipped. Only I/O and XML syntax
// errors are returned.
func (ks *KeySig) Read(r io.Reader, hook ErrorHook) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return errors.New("no <KeySig> element found")
		} else if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "KeySig" {
				return fmt.Errorf("expected <KeySig>, found <%s>", start.Name.Local)
			}
			return ks.ReadXML(dec, start, hook)
		}
	}
}

// ReadXML reads the content of a <KeySig> element whose start tag has just been
// consumed from dec.
func (ks *KeySig) ReadXML(dec *xml.Decoder, start xml.StartElement, hook ErrorHook) error {
	ec := &errorCollector{hook: hook}
	ev := InvalidEvent()
	subtype := 0
	var symbols []KeySym
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		} else if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			tag := t.Name.Local
			if tag == "KeySym" {
				s, ok, err := readKeySym(dec, t, ec)
				if err != nil {
					return err
				}
				if ok {
					symbols = append(symbols, s)
				}
				continue
			}
			switch tag {
			case "showCourtesySig", "showNaturals", "visible":
				b, ok, err := readBool(dec, t, ec, line)
				if err != nil {
					return err
				}
				if ok {
					switch tag {
					case "showCourtesySig":
						ks.showCourtesy = b
					case "showNaturals":
						ks.showNaturals = b
					default:
						ks.visible = b
					}
				}
			case "accidental", "natural", "custom", "subtype":
				n, ok, err := readInt(dec, t, ec, line)
				if err != nil {
					return err
				}
				if ok && (tag == "accidental" || tag == "natural") && !validCount(n) {
					ec.add(tag, line, SeverityMinor, "count %d out of range [-%d,%d]", n, MaxAccidentals, MaxAccidentals)
				}
				if ok {
					switch tag {
					case "accidental":
						ev = ev.WithAccidentals(n)
					case "natural":
						ev = ev.WithNaturals(n)
					case "custom":
						ev = CustomEvent(n)
					default:
						subtype = n
					}
				}
			default:
				ec.add(tag, line, SeverityMajor, "unknown tag in <%s>", start.Name.Local)
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if ev.Invalid() && subtype != 0 {
				ev = FromSubtype(subtype)
				tracer().Debugf("key signature from legacy subtype %#x: %v", subtype, ev)
			}
			ks.event = ev
			ks.symbols = symbols
			if ec.hasErrors() {
				tracer().Infof("read key signature %v with %d issue(s)", ev, len(ec.errors))
			}
			return nil
		}
	}
}

func readKeySym(dec *xml.Decoder, start xml.StartElement, ec *errorCollector) (KeySym, bool, error) {
	var ks KeySym
	for {
		tok, err := dec.Token()
		if err != nil {
			return ks, false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			switch t.Name.Local {
			case "sym":
				s, err := readText(dec, t)
				if err != nil {
					return ks, false, err
				}
				id, err := sym.Parse(s)
				if err != nil {
					ec.add("sym", line, SeverityMajor, "%v", err)
				}
				ks.Sym = id
			case "pos":
				ks.SPos = readPoint(t, ec, line)
				if err := dec.Skip(); err != nil {
					return ks, false, err
				}
			default:
				ec.add(t.Name.Local, line, SeverityMajor, "unknown tag in <%s>", start.Name.Local)
				if err := dec.Skip(); err != nil {
					return ks, false, err
				}
			}
		case xml.EndElement:
			if !ks.Sym.Valid() {
				ec.add(start.Name.Local, 0, SeverityMajor, "dropping key symbol without valid glyph")
				return ks, false, nil
			}
			return ks, true, nil
		}
	}
}

func readText(dec *xml.Decoder, start xml.StartElement) (string, error) {
	var s string
	if err := dec.DecodeElement(&s, &start); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func readInt(dec *xml.Decoder, start xml.StartElement, ec *errorCollector, line int) (int, bool, error) {
	s, err := readText(dec, start)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		ec.add(start.Name.Local, line, SeverityMajor, "not an integer: %q", s)
		return 0, false, nil
	}
	return n, true, nil
}

func readBool(dec *xml.Decoder, start xml.StartElement, ec *errorCollector, line int) (bool, bool, error) {
	s, err := readText(dec, start)
	if err != nil {
		return false, false, err
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		ec.add(start.Name.Local, line, SeverityMajor, "not a boolean: %q", s)
		return false, false, nil
	}
	return b, true, nil
}

func readPoint(start xml.StartElement, ec *errorCollector, line int) geom.Point {
	var p geom.Point
	for _, attr := range start.Attr {
		f, err := strconv.ParseFloat(attr.Value, 64)
		if err != nil {
			ec.add(start.Name.Local, line, SeverityMinor, "attribute %s is not a number: %q", attr.Name.Local, attr.Value)
			continue
		}
		switch attr.Name.Local {
		case "x":
			p.X = f
		case "y":
			p.Y = f
		default:
			ec.add(start.Name.Local, line, SeverityMinor, "unknown attribute %s", attr.Name.Local)
		}
	}
	return p
}
