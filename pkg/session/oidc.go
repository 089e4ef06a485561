package session

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/mwapio/console/pkg/config"
)

// Provider wraps OIDC discovery, code exchange, and ID-token
// verification for the configured identity provider.
type Provider struct {
	provider     *oidc.Provider
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
}

// NewProvider discovers the issuer and prepares the OAuth2 config.
// redirectURL is the loopback callback the login flow listens on.
func NewProvider(ctx context.Context, cfg config.OIDCConfig, redirectURL string) (*Provider, error) {
	if cfg.IssuerURL == "" {
		return nil, fmt.Errorf("issuer URL is required")
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  redirectURL,
		Scopes:       cfg.Scopes,
	}

	return &Provider{
		provider:     provider,
		verifier:     verifier,
		oauth2Config: oauth2Config,
	}, nil
}

// AuthCodeURL returns the authorization endpoint URL for the given state
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tok, nil
}

// TokenSource returns a refreshing token source for the given token
func (p *Provider) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	return p.oauth2Config.TokenSource(ctx, tok)
}

// ProfileFromToken verifies the ID token carried by tok and extracts
// the raw user profile from its claims.
func (p *Provider) ProfileFromToken(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("missing id_token in token response")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var claims struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse ID token claims: %w", err)
	}

	profile := &Profile{
		SubjectID:   idToken.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
		PictureURL:  claims.Picture,
	}
	if profile.SubjectID == "" {
		return nil, fmt.Errorf("missing subject in ID token")
	}
	if profile.DisplayName == "" {
		profile.DisplayName = claims.Email
	}
	return profile, nil
}
