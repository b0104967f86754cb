package update_note

// UpdateNoteRequest HTTP request model
type UpdateNoteRequest struct {
	Notes string `json:"notes"`
}
