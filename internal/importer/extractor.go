// Package importer turns contact export documents into directory entries.
//
// Extraction is a silent filter: individual candidates that fail validation
// (empty name, too few digits after normalization) are dropped, not reported.
// A document with zero valid candidates is a successful, empty result. Only a
// document that cannot be tokenized at all yields a *ParseError.
package importer

import (
	"fmt"
	"strings"

	"chatops.app/courier/internal/model"
	"chatops.app/courier/internal/phone"
)

// Format selects the export document format.
type Format string

const (
	FormatVCard Format = "vcard"
	FormatCSV   Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatVCard:
		return FormatVCard, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown import format %q", s)
}

// Candidate is a raw {name, phone} pair pulled from a document before
// normalization and dedup.
type Candidate struct {
	RawName  string
	RawPhone string
}

// ParseError marks a structurally invalid document, as opposed to a document
// that simply contains no usable contacts.
type ParseError struct {
	Format Format
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s document: %s", e.Format, e.Reason)
}

// Extract parses one export document into validated contacts, unique by
// candidate order (validation happens per candidate, dedup is separate).
func Extract(doc string, format Format) ([]Candidate, error) {
	switch format {
	case FormatVCard:
		return extractVCard(doc)
	case FormatCSV:
		return extractCSV(doc)
	}
	return nil, &ParseError{Format: format, Reason: "unsupported format"}
}

// Contacts validates and canonicalizes candidates. Candidates whose
// normalized number is too short or whose name trims to nothing are silently
// excluded.
func Contacts(candidates []Candidate) []model.Contact {
	out := make([]model.Contact, 0, len(candidates))
	for _, cand := range candidates {
		name := strings.TrimSpace(cand.RawName)
		digits := phone.Normalize(cand.RawPhone)
		if name == "" || len(digits) < phone.MinDigits {
			continue
		}
		out = append(out, model.Contact{ID: phone.ChatID(digits), Name: name})
	}
	return out
}
