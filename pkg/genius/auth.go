package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// AuthService provides the OAuth2 authorization-code flow.
type AuthService struct {
	client *Client
}

// AuthorizeURL returns the URL where the user grants the client access.
//
// This is the first step in the authentication flow. After the user
// approves, Genius redirects to RedirectURI with a "code" query parameter
// (and the state passed here), which ExchangeCode turns into a token.
//
// Example:
//
//	authURL, err := client.Auth().AuthorizeURL("random-state", "me")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Visit:", authURL)
func (a *AuthService) AuthorizeURL(state string, scopes ...string) (string, error) {
	if a.client.clientID == "" || a.client.redirectURI == "" {
		return "", fmt.Errorf("%w: ClientID and RedirectURI are required for authorization", ErrInvalidConfig)
	}

	params := url.Values{
		"client_id":     {a.client.clientID},
		"redirect_uri":  {a.client.redirectURI},
		"response_type": {"code"},
	}
	if len(scopes) > 0 {
		params.Set("scope", strings.Join(scopes, " "))
	}
	if state != "" {
		params.Set("state", state)
	}

	return a.client.apiBaseURL + "oauth/authorize?" + params.Encode(), nil
}

// ExchangeCode trades an authorization code for an access token.
//
// On success the token is also installed on the client, so subsequent
// calls use the authenticated API.
//
// Example:
//
//	token, err := client.Auth().ExchangeCode(ctx, code)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Store token.AccessToken for future use
func (a *AuthService) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	if a.client.clientID == "" || a.client.clientSecret == "" || a.client.redirectURI == "" {
		return nil, fmt.Errorf("%w: ClientID, ClientSecret and RedirectURI are required for code exchange", ErrInvalidConfig)
	}
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: authorization code is empty", ErrInvalidArgument)
	}

	form := url.Values{
		"code":          {code},
		"client_id":     {a.client.clientID},
		"client_secret": {a.client.clientSecret},
		"redirect_uri":  {a.client.redirectURI},
		"response_type": {"code"},
		"grant_type":    {"authorization_code"},
	}

	body, err := a.client.do(ctx, request{
		method: http.MethodPost,
		url:    a.client.apiBaseURL + "oauth/token",
		form:   form,
		accept: "application/json",
	})
	if err != nil {
		return nil, err
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("genius: token response has no access_token")
	}

	a.client.SetAccessToken(token.AccessToken)
	return &token, nil
}

// ParseRedirect extracts the authorization code from the URL Genius
// redirected the user to, checking the state parameter when one was sent.
func ParseRedirect(redirected, wantState string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(redirected))
	if err != nil {
		return "", fmt.Errorf("%w: invalid redirect URL: %v", ErrInvalidArgument, err)
	}

	q := u.Query()
	if e := q.Get("error"); e != "" {
		return "", &Error{Status: http.StatusUnauthorized, Message: e + ": " + q.Get("error_description")}
	}
	if wantState != "" && q.Get("state") != wantState {
		return "", fmt.Errorf("%w: state mismatch", ErrInvalidArgument)
	}

	code := q.Get("code")
	if code == "" {
		return "", fmt.Errorf("%w: redirect URL has no code", ErrInvalidArgument)
	}
	return code, nil
}
