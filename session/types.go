package session

import "context"

// User is the last-known authenticated operator profile. Held only in
// memory; it is reconstructed from backend responses, never derived from
// the token.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// Credentials carries a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration carries a registration request.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
}

// TokenGrant is a token pair issued by the backend. RefreshToken may be
// empty on a refresh response, in which case the caller keeps the prior one.
type TokenGrant struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// AuthClient performs the raw authentication calls against the backend.
// Implemented by api.AuthService.
type AuthClient interface {
	Login(ctx context.Context, creds Credentials) (*TokenGrant, error)
	Register(ctx context.Context, reg Registration) (*TokenGrant, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenGrant, error)
}
