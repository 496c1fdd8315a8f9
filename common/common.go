// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"encoding/json"
	"io"
	"net/http"
)

func DecodeJSONBody(res *http.Response, j interface{}) error {
	defer res.Body.Close()

	return json.NewDecoder(res.Body).Decode(&j)
}

// ReadBody drains and returns the raw response body. Used to preserve the
// service's response verbatim when reporting errors.
func ReadBody(res *http.Response) []byte {
	if res.Body == nil {
		return nil
	}

	defer res.Body.Close()

	// keep whatever arrived before a mid-stream read error; a truncated
	// body is still better error context than none
	body, _ := io.ReadAll(res.Body)

	return body
}
