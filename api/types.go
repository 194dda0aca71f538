package api

import (
	"encoding/json"

	"github.com/elcafe/go-admin-client/session"
)

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// authPayload is the data section of login/register/refresh responses.
// RefreshToken is optional on refresh responses.
type authPayload struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *session.User `json:"user"`
}

func (p authPayload) grant() *session.TokenGrant {
	return &session.TokenGrant{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		User:         p.User,
	}
}
