package models

// AppUser is an authenticated end user of a Cocobase application.
type AppUser struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	CreatedAt string         `json:"created_at"`
	Data      map[string]any `json:"data"`
	ClientID  string         `json:"client_id"`
}

// TokenResponse is returned by the login and signup endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Credentials is the flat body sent to the login and signup endpoints.
type Credentials struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

// UserUpdate describes a partial update of the current user. Nil fields are
// left out of the request body.
type UserUpdate struct {
	Data     map[string]any
	Email    *string
	Password *string
}
