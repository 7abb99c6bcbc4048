package models

import "time"

// Session is the locally persisted authentication state. The token is an
// opaque bearer string issued by the remote service.
type Session struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Token      string    `json:"token"`
	LoggedInAt time.Time `json:"logged_in_at"`
}
