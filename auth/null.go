// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0
package auth

// NullAuthenticator attaches no credentials. It is used for the calls the
// submission API serves unauthenticated, and in tests.
type NullAuthenticator struct{}

func (o *NullAuthenticator) Configure(cfg map[string]interface{}) error {
	return nil
}

func (o *NullAuthenticator) EncodeHeader() (string, error) {
	return "", nil
}
