package dto

// StartSessionDTO - установление сессии синхронизации: access-токен зрителя.
type StartSessionDTO struct {
	Token string `json:"token" validate:"required"`
}

type SessionStateDTO struct {
	ViewerID    string `json:"viewer_id"`
	ViewerRole  string `json:"viewer_role"`
	UnreadCount int    `json:"unread_count"`
	OrderCount  int    `json:"order_count"`
}
