package importer

import (
	"strings"
)

const (
	vcardBegin = "BEGIN:VCARD"
	vcardEnd   = "END:VCARD"
)

// extractVCard tokenizes BEGIN:VCARD ... END:VCARD blocks. Each card
// contributes at most one candidate: the FN value and one TEL value,
// preferring a TEL parameterized as CELL when a card lists several numbers.
// Cards missing FN or TEL yield no candidate.
func extractVCard(doc string) ([]Candidate, error) {
	if !strings.Contains(strings.ToUpper(doc), vcardBegin) {
		return nil, &ParseError{Format: FormatVCard, Reason: "no BEGIN:VCARD block found"}
	}

	var (
		candidates []Candidate
		inCard     bool
		card       vcardFields
	)

	for _, line := range unfoldLines(doc) {
		upper := strings.ToUpper(line)
		switch {
		case upper == vcardBegin:
			inCard = true
			card = vcardFields{}
		case upper == vcardEnd:
			if inCard {
				if cand, ok := card.candidate(); ok {
					candidates = append(candidates, cand)
				}
			}
			inCard = false
		case inCard:
			card.addLine(line)
		}
	}

	return candidates, nil
}

type vcardTel struct {
	value string
	cell  bool
}

type vcardFields struct {
	formattedName string
	tels          []vcardTel
}

func (f *vcardFields) addLine(line string) {
	name, params, value, ok := splitProperty(line)
	if !ok {
		return
	}
	switch name {
	case "FN":
		if f.formattedName == "" {
			f.formattedName = strings.TrimSpace(value)
		}
	case "TEL":
		f.tels = append(f.tels, vcardTel{
			value: strings.TrimSpace(value),
			cell:  strings.Contains(params, "CELL"),
		})
	}
}

func (f *vcardFields) candidate() (Candidate, bool) {
	if f.formattedName == "" || len(f.tels) == 0 {
		return Candidate{}, false
	}
	tel := f.tels[0]
	for _, t := range f.tels {
		if t.cell {
			tel = t
			break
		}
	}
	return Candidate{RawName: f.formattedName, RawPhone: tel.value}, true
}

// splitProperty splits "NAME;PARAM=X;PARAM=Y:value" into its parts.
// Name and params are uppercased; property group prefixes ("item1.TEL") are
// dropped.
func splitProperty(line string) (name, params, value string, ok bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", "", "", false
	}
	head := strings.ToUpper(line[:colon])
	value = line[colon+1:]

	if dot := strings.Index(head, "."); dot >= 0 {
		head = head[dot+1:]
	}
	if semi := strings.Index(head, ";"); semi >= 0 {
		name, params = head[:semi], head[semi+1:]
	} else {
		name = head
	}
	return name, params, value, true
}

// unfoldLines splits the document into logical lines, joining RFC 6350
// folded continuations (lines starting with a space or tab).
func unfoldLines(doc string) []string {
	raw := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")
	var lines []string
	for _, l := range raw {
		if len(l) > 0 && (l[0] == ' ' || l[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += l[1:]
			continue
		}
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
