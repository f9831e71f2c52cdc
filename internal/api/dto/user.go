package dto

// UpdateNameRequest renames the caller
type UpdateNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// NameResponse echoes the stored name
type NameResponse struct {
	Name string `json:"name"`
}
