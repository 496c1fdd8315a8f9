// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0
package auth

// IAuthenticator produces the Authorization header value attached to
// authenticated submission API calls.
type IAuthenticator interface {
	Configure(cfg map[string]interface{}) error
	EncodeHeader() (string, error)
}
