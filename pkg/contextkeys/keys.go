package contextkeys

type contextKey string

const (
	ViewerIDKey   contextKey = "ViewerID"
	ViewerRoleKey contextKey = "ViewerRole"
)
