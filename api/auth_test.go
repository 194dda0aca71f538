package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elcafe/go-admin-client/api"
	"github.com/elcafe/go-admin-client/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceRequiresBaseURL(t *testing.T) {
	_, err := api.NewAuthService("")
	require.Error(t, err)
}

func TestAuthServiceLoginDecodesGrant(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds session.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "admin@elcafe.com", creds.Email)

		writeEnvelope(w, http.StatusOK, "", map[string]any{
			"accessToken":  "access-token",
			"refreshToken": "refresh-token",
			"user":         map[string]any{"id": 7, "email": "admin@elcafe.com", "role": "ADMIN"},
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	service, err := api.NewAuthService(server.URL)
	require.NoError(t, err)

	grant, err := service.Login(context.Background(), session.Credentials{
		Email:    "admin@elcafe.com",
		Password: "pw",
	})
	require.NoError(t, err)
	require.Equal(t, "access-token", grant.AccessToken)
	require.Equal(t, "refresh-token", grant.RefreshToken)
	require.Equal(t, int64(7), grant.User.ID)
	require.Equal(t, "ADMIN", grant.User.Role)
}

func TestAuthServiceSurfacesBackendMessage(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "Invalid email or password", nil)
	})
	server := httptest.NewServer(router)
	defer server.Close()

	service, err := api.NewAuthService(server.URL)
	require.NoError(t, err)

	_, err = service.Login(context.Background(), session.Credentials{})
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid email or password", apiErr.Message)
	require.Equal(t, "Invalid email or password", apiErr.BackendMessage())
}

func TestAuthServiceRefreshWithoutRotation(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "stored-refresh", body["refreshToken"])

		// The backend renews the access token only.
		writeEnvelope(w, http.StatusOK, "", map[string]string{"accessToken": "new-access"})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	service, err := api.NewAuthService(server.URL)
	require.NoError(t, err)

	grant, err := service.Refresh(context.Background(), "stored-refresh")
	require.NoError(t, err)
	require.Equal(t, "new-access", grant.AccessToken)
	require.Empty(t, grant.RefreshToken)
	require.Nil(t, grant.User)
}
