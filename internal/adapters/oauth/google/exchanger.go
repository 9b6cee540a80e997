package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// Exchanger trades a Google authorization code for verified identity
// claims. The id token returned by the exchange is verified against
// Google's public keys and the configured client id; a token issued for
// a different client is rejected.
type Exchanger struct {
	config   *oauth2.Config
	clientID string
}

func NewExchanger(clientID, clientSecret, redirectURL string) *Exchanger {
	return &Exchanger{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		clientID: clientID,
	}
}

func (e *Exchanger) Exchange(ctx context.Context, code string) (*ports.Identity, error) {
	token, err := e.config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
			return nil, domain.ErrInvalidGrant
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrIdentityProvider, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: no id_token in token response", domain.ErrIdentityProvider)
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, e.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: id token validation: %v", domain.ErrIdentityProvider, err)
	}

	identity := &ports.Identity{GoogleID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		identity.PictureURL = picture
	}

	if identity.Email == "" {
		return nil, fmt.Errorf("%w: email not found in claims", domain.ErrIdentityProvider)
	}

	return identity, nil
}
