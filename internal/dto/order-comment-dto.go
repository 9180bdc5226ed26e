package dto

type CreateOrderCommentDTO struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
	// Внутренние комментарии видны только staff/admin.
	IsInternal bool `json:"is_internal"`
}
