package dto

// ListQuery filters and pages an entity list
type ListQuery struct {
	Search string   `form:"q"`
	Fields []string `form:"fields"`
	Page   int      `form:"page" binding:"omitempty,min=1"`
	Size   int      `form:"size" binding:"omitempty,min=1,max=100"`
}

// SearchQuery is the global search term
type SearchQuery struct {
	Term string `form:"q" binding:"required"`
}

// ConfirmRequest carries the answer to a destructive operation prompt.
// The HTTP adapter has no dialog, so the client confirms up front.
type ConfirmRequest struct {
	Confirm bool `form:"confirm"`
}

// ImportResponse reports how many records each imported collection now holds
type ImportResponse struct {
	Collections map[string]int `json:"collections"`
}
