package model

// Contact is one entry in the deployment's directory, unique by ID.
// ID is the canonical chat identifier ("<digits>@c.us").
type Contact struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Directory is the full contact set, persisted wholesale under a single key.
type Directory []Contact

// ByID returns the contact with the given identifier, if present.
func (d Directory) ByID(id string) (Contact, bool) {
	for _, c := range d {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}
