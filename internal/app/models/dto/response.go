package dto

import "time"

// APIResponse is the envelope of every successful API response
type APIResponse struct {
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Error      *ErrorDetail    `json:"error,omitempty"`
	Timestamp  time.Time       `json:"timestamp" example:"2026-10-17T12:01:05.123Z"`
}

// PaginationInfo describes one page of a list
type PaginationInfo struct {
	CurrentPage int `json:"currentPage" example:"1"`
	TotalPages  int `json:"totalPages" example:"3"`
	PageSize    int `json:"pageSize" example:"10"`
	TotalItems  int `json:"totalItems" example:"27"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// NewAPIResponse wraps data with the current timestamp
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}
