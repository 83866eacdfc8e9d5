package types

// User is an application account. The role determines the permission set via
// the static mapping in permissions.go; permissions are never stored per-user.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"` // Unique across users.
	Phone  string `json:"phone,omitempty"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"` // Data URI or URL.
}

// Message is a direct message between two users, optionally scoped to a project.
type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"` // ISO 8601.
	Read       bool   `json:"read"`
	ProjectID  string `json:"projectId,omitempty"`
}
