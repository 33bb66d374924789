package models

// Credentials are the username and password presented by a client, either
// in a login body or an HTTP Basic header.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the bearer token returned after a successful login.
type Token struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
