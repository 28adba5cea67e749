package dto

import "chatops.app/courier/internal/model"

type ImportRequest struct {
	Format   string `json:"format" binding:"required,oneof=vcard csv"`
	Document string `json:"document" binding:"required"`
}

type ImportResponse struct {
	ImportID string `json:"import_id"`
	Added    int    `json:"added"`
	Skipped  int    `json:"skipped"`
	Total    int    `json:"total"`
}

type ContactResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DirectoryResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

func ToDirectoryResponse(dir model.Directory) DirectoryResponse {
	contacts := make([]ContactResponse, 0, len(dir))
	for _, c := range dir {
		contacts = append(contacts, ContactResponse{ID: c.ID, Name: c.Name})
	}
	return DirectoryResponse{Contacts: contacts}
}
