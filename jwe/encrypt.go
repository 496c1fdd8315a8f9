// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

// Package jwe wraps payloads as compact JWE tokens under a destination's
// public key, using the encryption mode mandated by the submission API:
// RSA-OAEP-256 key wrap, A256GCM content encryption, DEFLATE compression.
package jwe

import (
	"crypto"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"

	jose "github.com/go-jose/go-jose/v3"
)

// CryptoError reports invalid recipient key material or a failed encryption
// step. Payloads are never encrypted under a key that failed validation.
type CryptoError struct {
	Msg string
	Err error
}

func (o *CryptoError) Error() string {
	if o.Err != nil {
		return fmt.Sprintf("%s: %v", o.Msg, o.Err)
	}

	return o.Msg
}

func (o *CryptoError) Unwrap() error {
	return o.Err
}

// ParseKey decodes a JWK-shaped public key descriptor, as served by the
// destination key endpoint, and validates that it is usable for key wrap.
func ParseKey(raw []byte) (*jose.JSONWebKey, error) {
	if len(raw) == 0 {
		return nil, &CryptoError{Msg: "empty key material"}
	}

	var key jose.JSONWebKey

	if err := key.UnmarshalJSON(raw); err != nil {
		return nil, &CryptoError{Msg: "malformed key material", Err: err}
	}

	if err := checkKey(&key); err != nil {
		return nil, err
	}

	return &key, nil
}

// EncryptBytes wraps plaintext as a compact five-segment JWE token under the
// recipient's public key. The protected header carries the RFC 7638
// thumbprint of the recipient key as kid, overriding any kid the descriptor
// declared.
func EncryptBytes(plaintext []byte, recipient *jose.JSONWebKey) (string, error) {
	if err := checkKey(recipient); err != nil {
		return "", err
	}

	thumbprint, err := recipient.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", &CryptoError{Msg: "computing recipient key thumbprint", Err: err}
	}

	rcpt := *recipient
	rcpt.KeyID = base64.RawURLEncoding.EncodeToString(thumbprint)

	opts := (&jose.EncrypterOptions{Compression: jose.DEFLATE}).
		WithType("JWE").
		WithContentType("application/json")

	encrypter, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.RSA_OAEP_256, Key: &rcpt},
		opts,
	)
	if err != nil {
		return "", &CryptoError{Msg: "initializing encrypter", Err: err}
	}

	obj, err := encrypter.Encrypt(plaintext)
	if err != nil {
		return "", &CryptoError{Msg: "encrypting payload", Err: err}
	}

	token, err := obj.CompactSerialize()
	if err != nil {
		return "", &CryptoError{Msg: "serializing token", Err: err}
	}

	return token, nil
}

// EncryptJSON serializes payload as UTF-8 JSON and encrypts the result via
// EncryptBytes.
func EncryptJSON(payload interface{}, recipient *jose.JSONWebKey) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling payload: %w", err)
	}

	return EncryptBytes(data, recipient)
}

func checkKey(key *jose.JSONWebKey) error {
	if key == nil || key.Key == nil {
		return &CryptoError{Msg: "no recipient key"}
	}

	if !key.Valid() {
		return &CryptoError{Msg: "invalid key material"}
	}

	if !key.IsPublic() {
		return &CryptoError{Msg: "recipient key is not a public key"}
	}

	if _, ok := key.Key.(*rsa.PublicKey); !ok {
		return &CryptoError{Msg: "recipient key is not an RSA key"}
	}

	return nil
}
