package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo?id_token="

// GoogleUserInfo is the subset of the tokeninfo response the API uses.
type GoogleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleVerifier validates Google ID tokens against the tokeninfo endpoint.
type GoogleVerifier struct {
	ClientID string
	Client   *http.Client
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{ClientID: clientID, Client: http.DefaultClient}
}

// VerifyIDToken checks the token with Google and that it was issued for
// this application.
func (g *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+idToken, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending verification request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("invalid token")
	}

	var tokenInfo struct {
		Aud string `json:"aud"`
		GoogleUserInfo
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if tokenInfo.Aud != g.ClientID {
		return nil, errors.New("token was not issued for this application")
	}
	return &tokenInfo.GoogleUserInfo, nil
}
