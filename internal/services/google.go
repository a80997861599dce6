package services

import (
	"context"
	"fmt"

	"github.com/localnerve/jobboard/internal/config"
	"github.com/localnerve/jobboard/internal/types"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// GoogleAuth runs the Google sign-in flows for candidates
type GoogleAuth struct {
	oauth    *oauth2.Config
	clientID string
}

// NewGoogleAuth builds the OAuth client from config. It returns nil when Google sign-in is not configured.
func NewGoogleAuth(cfg *config.Config) *GoogleAuth {
	if cfg.GoogleClientID == "" {
		return nil
	}
	return &GoogleAuth{
		clientID: cfg.GoogleClientID,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{oauth2api.UserinfoProfileScope, oauth2api.UserinfoEmailScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// WebEnabled reports whether the redirect flow has a client secret to exchange codes with
func (g *GoogleAuth) WebEnabled() bool {
	return g != nil && g.oauth.ClientSecret != ""
}

// AuthCodeURL is the consent page the web flow redirects to
func (g *GoogleAuth) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades a callback code for the signed-in Google identity
func (g *GoogleAuth) Exchange(ctx context.Context, code string) (*GoogleIdentity, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(g.oauth.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to create google userinfo client: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("google userinfo request failed: %w", err)
	}

	return &GoogleIdentity{
		Subject: info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

// VerifyIDToken validates a mobile client's ID token against this client id.
// Fields missing from the token are filled from claimed.
func (g *GoogleAuth) VerifyIDToken(ctx context.Context, token string, claimed *GoogleIdentity) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, token, g.clientID)
	if err != nil {
		return nil, types.ErrInvalidToken
	}
	if claimed.Subject != "" && claimed.Subject != payload.Subject {
		return nil, types.ErrInvalidUserInfo
	}

	id := &GoogleIdentity{
		Subject:     payload.Subject,
		Email:       claimString(payload.Claims, "email", claimed.Email),
		Name:        claimString(payload.Claims, "name", claimed.Name),
		Picture:     claimString(payload.Claims, "picture", claimed.Picture),
		FirebaseUID: claimed.FirebaseUID,
	}
	return id, nil
}

func claimString(claims map[string]interface{}, key, fallback string) string {
	if v, ok := claims[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
