// services/auth_service_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"basketball-league/models"
	"basketball-league/utils"

	"github.com/rs/zerolog/log"
)

// AuthServiceClient talks to an external auth service that owns the
// tokens. Only /auth/validate is used.
type AuthServiceClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

type ValidateResponse struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

func NewAuthServiceClient(baseURL, token string) *AuthServiceClient {
	return &AuthServiceClient{
		BaseURL: baseURL,
		Token:   token,
		Client:  utils.HTTPClient,
	}
}

// ValidateToken calls /auth/validate on the auth service
func (c *AuthServiceClient) ValidateToken(ctx context.Context, accessToken string) (*ValidateResponse, error) {
	url := fmt.Sprintf("%s/auth/validate", c.BaseURL)

	jsonData, err := json.Marshal(map[string]any{"access_token": accessToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token) // service to service

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("auth service rejected token")
		return nil, fmt.Errorf("auth validation failed: %d", resp.StatusCode)
	}

	var out ValidateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if out.UserID == "" {
		return nil, fmt.Errorf("auth validation returned no user")
	}
	return &out, nil
}

// RemoteAuthenticator validates tokens with the auth service and maps them
// onto local accounts by id.
type RemoteAuthenticator struct {
	Client *AuthServiceClient
	Users  *UserService
	Tokens *TokenService
}

func NewRemoteAuthenticator(client *AuthServiceClient, users *UserService, tokens *TokenService) *RemoteAuthenticator {
	return &RemoteAuthenticator{Client: client, Users: users, Tokens: tokens}
}

func (a *RemoteAuthenticator) Authenticate(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, ErrUnauthorized
	}
	resp, err := a.Client.ValidateToken(ctx, key)
	if err != nil {
		return nil, &Error{Kind: KindUnauthorized, Detail: ErrInvalidToken.Detail, Err: err}
	}

	user, err := a.Users.GetUser(resp.UserID)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if err := a.Tokens.Remember(user, key); err != nil {
		return nil, err
	}
	return user, nil
}
