// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/moogar0880/problems"
)

// ResponseError summarizes a non-2xx response from the service: the HTTP
// status, the raw body verbatim, and the decoded RFC 7807 problem document
// when the service provided one.
type ResponseError struct {
	StatusCode int
	Body       []byte
	Problem    *problems.DefaultProblem
}

// NewResponseError builds a ResponseError from res, consuming its body.
func NewResponseError(res *http.Response) *ResponseError {
	o := &ResponseError{
		StatusCode: res.StatusCode,
		Body:       ReadBody(res),
	}

	if res.Header.Get("Content-Type") == problems.ProblemMediaType {
		var prob problems.DefaultProblem

		if err := json.Unmarshal(o.Body, &prob); err == nil {
			o.Problem = &prob
		}
	}

	return o
}

func (o *ResponseError) Error() string {
	if o.Problem != nil {
		return fmt.Sprintf("%d %s: %s", o.StatusCode, o.Problem.Title, o.Problem.Detail)
	}

	return fmt.Sprintf("unexpected HTTP response code %d: %s", o.StatusCode, string(o.Body))
}
