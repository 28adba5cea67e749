package importer

import "chatops.app/courier/internal/model"

// Dedupe collapses contacts to a set unique by ID.
//
// Policy: first-seen-wins over the input order. The earliest name for a given
// identifier is kept, so repeated imports of overlapping files are stable and
// the operation is idempotent (Dedupe(Dedupe(x)) == Dedupe(x)).
func Dedupe(contacts []model.Contact) model.Directory {
	seen := make(map[string]struct{}, len(contacts))
	out := make(model.Directory, 0, len(contacts))
	for _, c := range contacts {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// MergeIntoDirectory merges deduplicated import candidates into an existing
// directory. Candidates whose ID is already present are dropped: imports
// never overwrite operator edits. Returns the merged directory and the number
// of entries actually added.
func MergeIntoDirectory(existing model.Directory, incoming model.Directory) (model.Directory, int) {
	known := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		known[c.ID] = struct{}{}
	}

	merged := make(model.Directory, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	added := 0
	for _, c := range incoming {
		if _, ok := known[c.ID]; ok {
			continue
		}
		known[c.ID] = struct{}{}
		merged = append(merged, c)
		added++
	}
	return merged, added
}
