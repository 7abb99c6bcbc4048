package models

// APIResponse is the envelope every StoryShare endpoint wraps its payload in.
type APIResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// LoginResult carries the session data returned by a successful login.
type LoginResult struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// LoginResponse is the body of POST /login.
type LoginResponse struct {
	APIResponse
	LoginResult LoginResult `json:"loginResult"`
}

// StoriesResponse is the body of GET /stories.
type StoriesResponse struct {
	APIResponse
	ListStory []Story `json:"listStory"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PushSubscription is the web-push registration payload for
// POST /notifications/subscribe.
type PushSubscription struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

// SubscriptionKeys are the client keys of a push subscription.
type SubscriptionKeys struct {
	P256DH string `json:"p256dh"`
	Auth   string `json:"auth"`
}
