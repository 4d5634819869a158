package domain

// DefaultDisplayName is shown when neither the chat profile nor the account has a name.
const DefaultDisplayName = "User"

// Caller is the authenticated user behind the client.
type Caller struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// ChatProfile holds per-user chat settings.
type ChatProfile struct {
	UserID          string `json:"user_id"`
	ChatDisplayName string `json:"chat_display_name"`
}
