package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taskflow/taskflow-api/internal/constants"
)

// IdentityVerifier completes the provider handshake for an authorization code
// and returns the verified claim set.
type IdentityVerifier interface {
	Verify(ctx context.Context, code string) (ExternalIdentity, error)
}

const (
	githubTokenURL = "https://github.com/login/oauth/access_token"
	githubUserURL  = "https://api.github.com/user"
)

// GitHubVerifier exchanges GitHub authorization codes for user profiles.
type GitHubVerifier struct {
	client       *http.Client
	clientID     string
	clientSecret string
}

// NewGitHubVerifier creates a new GitHubVerifier.
func NewGitHubVerifier(clientID, clientSecret string) *GitHubVerifier {
	return &GitHubVerifier{
		client:       &http.Client{Timeout: 10 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Verify exchanges the authorization code for an access token and fetches the
// user's GitHub profile.
func (v *GitHubVerifier) Verify(ctx context.Context, code string) (ExternalIdentity, error) {
	token, err := v.exchangeCode(ctx, code)
	if err != nil {
		return ExternalIdentity{}, err
	}
	return v.fetchProfile(ctx, token)
}

func (v *GitHubVerifier) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", v.clientID)
	form.Set("client_secret", v.clientSecret)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, githubTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed with status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.Error != "" || payload.AccessToken == "" {
		return "", fmt.Errorf("token exchange rejected: %s", payload.Error)
	}

	return payload.AccessToken, nil
}

func (v *GitHubVerifier) fetchProfile(ctx context.Context, token string) (ExternalIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubUserURL, nil)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := v.client.Do(req)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ExternalIdentity{}, fmt.Errorf("profile fetch failed with status %d", resp.StatusCode)
	}

	var profile struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return ExternalIdentity{}, fmt.Errorf("failed to decode profile: %w", err)
	}

	identity := ExternalIdentity{
		Provider: constants.ProviderGitHub,
		Email:    profile.Email,
		Name:     profile.Name,
	}
	if profile.ID != 0 {
		identity.ExternalID = strconv.FormatInt(profile.ID, 10)
	}

	return identity, nil
}
