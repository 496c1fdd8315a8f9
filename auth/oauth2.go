// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AuthenticationError is returned when the token endpoint rejects the
// client-credentials grant. Body carries the endpoint's response verbatim.
type AuthenticationError struct {
	StatusCode int
	Body       []byte

	err error
}

func (o *AuthenticationError) Error() string {
	if o.StatusCode == 0 {
		return fmt.Sprintf("failed to obtain access token: %v", o.err)
	}

	return fmt.Sprintf(
		"failed to obtain access token (status %d): %s",
		o.StatusCode, string(o.Body),
	)
}

func (o *AuthenticationError) Unwrap() error {
	return o.err
}

// ClientCredentialsAuthenticator holds the sender client's API credentials
// and the current session token. It holds at most one token at a time; each
// successful ObtainToken overwrites the previous one.
type ClientCredentialsAuthenticator struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string

	Token *oauth2.Token
}

func (o *ClientCredentialsAuthenticator) Configure(cfg map[string]interface{}) error {
	decoded := struct {
		TokenURL     string                 `mapstructure:"token_url" valid:"url"`
		ClientID     string                 `mapstructure:"client_id"`
		ClientSecret string                 `mapstructure:"client_secret"`
		Scopes       []string               `mapstructure:"scopes"`
		Rest         map[string]interface{} `mapstructure:",remain"`
	}{}

	if err := mapstructure.Decode(cfg, &decoded); err != nil {
		return err
	}

	o.TokenURL = decoded.TokenURL
	o.ClientID = decoded.ClientID
	o.ClientSecret = decoded.ClientSecret
	o.Scopes = decoded.Scopes

	if err := o.validate(); err != nil {
		return err
	}

	if len(decoded.Rest) > 0 {
		var unexpected []string
		for k := range decoded.Rest {
			unexpected = append(unexpected, k)
		}
		return fmt.Errorf("unexpected fields in config: %s",
			strings.Join(unexpected, ", "))
	}

	return nil
}

// ObtainToken performs the client-credentials grant against the token
// endpoint and stores the result as the current session token. On a rejected
// grant an AuthenticationError is returned and the previous token, if any, is
// left in place.
func (o *ClientCredentialsAuthenticator) ObtainToken() (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}

	conf := &clientcredentials.Config{
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		TokenURL:     o.TokenURL,
		Scopes:       o.Scopes,
		// grant_type, client_id and client_secret travel in the form
		// body, not in a Basic Authorization header.
		AuthStyle: oauth2.AuthStyleInParams,
	}

	token, err := conf.Token(context.Background())
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return "", &AuthenticationError{
				StatusCode: rerr.Response.StatusCode,
				Body:       rerr.Body,
				err:        err,
			}
		}
		return "", &AuthenticationError{err: err}
	}

	o.Token = token

	return token.AccessToken, nil
}

// EncodeHeader returns the Authorization header value for the current token,
// or the empty string when no token has been obtained yet. It never fetches
// a token itself: callers request one explicitly via ObtainToken, and a
// stale token surfaces as the service's own authorization failure.
func (o *ClientCredentialsAuthenticator) EncodeHeader() (string, error) {
	if o.Token == nil {
		return "", nil
	}

	return fmt.Sprintf("Bearer %s", o.Token.AccessToken), nil
}

func (o *ClientCredentialsAuthenticator) validate() error {
	if o.ClientID == "" {
		return errors.New("missing client_id")
	}

	if o.ClientSecret == "" {
		return errors.New("missing client_secret")
	}

	if o.TokenURL == "" {
		return errors.New("missing token_url")
	}

	if _, err := url.Parse(o.TokenURL); err != nil {
		return fmt.Errorf("invalid token_url: %w", err)
	}

	return nil
}
