// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"fmt"

	"github.com/fitconnect-go/apiclient/common"
)

// LookupError reports a failed or inconsistent destination resolution:
// the destination descriptor or its encryption key could not be fetched, or
// the descriptor names no key.
type LookupError struct {
	DestinationID string
	Reason        string // set when there is no HTTP response to blame
	Response      *common.ResponseError
}

func (o *LookupError) Error() string {
	if o.Response == nil {
		return fmt.Sprintf("failed to resolve destination %q: %s", o.DestinationID, o.Reason)
	}

	return fmt.Sprintf("failed to resolve destination %q: %v", o.DestinationID, o.Response)
}

func (o *LookupError) Unwrap() error {
	if o.Response == nil {
		return nil
	}

	return o.Response
}

// CreationError reports a rejected submission create call.
type CreationError struct {
	DestinationID string
	Response      *common.ResponseError
}

func (o *CreationError) Error() string {
	return fmt.Sprintf("failed to create submission for destination %q: %v",
		o.DestinationID, o.Response)
}

func (o *CreationError) Unwrap() error {
	return o.Response
}

// UploadError reports a rejected attachment upload. Attachments uploaded
// before the failing one are not rolled back; the service owns the record of
// what it has received.
type UploadError struct {
	SubmissionID string
	AttachmentID string
	Response     *common.ResponseError
}

func (o *UploadError) Error() string {
	return fmt.Sprintf("failed to upload attachment %q for submission %q: %v",
		o.AttachmentID, o.SubmissionID, o.Response)
}

func (o *UploadError) Unwrap() error {
	return o.Response
}

// FinalizationError reports a rejected finalize call.
type FinalizationError struct {
	SubmissionID string
	Response     *common.ResponseError
}

func (o *FinalizationError) Error() string {
	return fmt.Sprintf("failed to finalize submission %q: %v", o.SubmissionID, o.Response)
}

func (o *FinalizationError) Unwrap() error {
	return o.Response
}
