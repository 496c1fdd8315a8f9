// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitconnect-go/apiclient/auth"
)

// Client holds configuration data associated with the HTTP(s) session
type Client struct {
	HTTPClient http.Client
	Auth       auth.IAuthenticator
	Logger     zerolog.Logger
}

// NewClient instantiates a new Client using the supplied authenticator. A
// nil authenticator behaves like auth.NullAuthenticator. Logging is disabled
// until a logger is set on the returned Client.
func NewClient(a auth.IAuthenticator) *Client {
	return &Client{
		HTTPClient: http.Client{
			Timeout: 5 * time.Second,
		},
		Auth:   a,
		Logger: zerolog.Nop(),
	}
}

// GetResource fetches the resource at uri. The Authorization header is
// attached only when authd is set; key discovery is served unauthenticated.
func (c *Client) GetResource(uri string, authd bool) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %q, request creation failed: %w", uri, err)
	}

	return c.do(req, authd)
}

// PostResource POSTs body to uri with the supplied content type, attaching
// the Authorization header.
func (c *Client) PostResource(body []byte, ct, uri string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, uri, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("POST %q, request creation failed: %w", uri, err)
	}

	req.Header.Set("Content-Type", ct)

	return c.do(req, true)
}

// PutResource PUTs body to uri with the supplied content type, attaching the
// Authorization header.
func (c *Client) PutResource(body []byte, ct, uri string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPut, uri, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("PUT %q, request creation failed: %w", uri, err)
	}

	req.Header.Set("Content-Type", ct)

	return c.do(req, true)
}

func (c *Client) do(req *http.Request, authd bool) (*http.Response, error) {
	if authd && c.Auth != nil {
		header, err := c.Auth.EncodeHeader()
		if err != nil {
			return nil, fmt.Errorf("%s %q, encoding authorization header: %w",
				req.Method, req.URL, err)
		}

		if header != "" {
			req.Header.Set("Authorization", header)
		}
	}

	c.Logger.Debug().
		Str("method", req.Method).
		Stringer("url", req.URL).
		Msg("sending request")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return res, nil
}
