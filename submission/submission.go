// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

package submission

// Submission represents one in-flight submission to a destination.
type Submission struct {
	DestinationID     string
	ServiceIdentifier string
	ServiceName       string

	// Attachments in declaration order. The order is echoed in the
	// metadata and must stay stable over the submission's lifetime.
	Attachments []*Attachment

	// SubmissionID is assigned by the service when the submission is
	// created, and never reassigned.
	SubmissionID string
}

// NewSubmission builds a not-yet-created Submission.
func NewSubmission(destinationID, serviceIdentifier, serviceName string, attachments []*Attachment) *Submission {
	return &Submission{
		DestinationID:     destinationID,
		ServiceIdentifier: serviceIdentifier,
		ServiceName:       serviceName,
		Attachments:       attachments,
	}
}

// ServiceType identifies the administrative procedure being invoked.
type ServiceType struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// CreateRequest is the body of the submission create call.
type CreateRequest struct {
	DestinationID        string      `json:"destinationId"`
	ServiceType          ServiceType `json:"serviceType"`
	AnnouncedAttachments []string    `json:"announcedAttachments"`
}

// CreateRequest builds the announcement body for the create call.
func (o *Submission) CreateRequest() *CreateRequest {
	return &CreateRequest{
		DestinationID: o.DestinationID,
		ServiceType: ServiceType{
			Name:       o.ServiceName,
			Identifier: o.ServiceIdentifier,
		},
		AnnouncedAttachments: o.AttachmentIDs(),
	}
}

// AttachmentIDs returns the attachment identifiers in declaration order.
// Metadata construction walks the same underlying sequence, so announced and
// declared identifiers cannot diverge.
func (o *Submission) AttachmentIDs() []string {
	ids := make([]string, 0, len(o.Attachments))
	for _, a := range o.Attachments {
		ids = append(ids, a.ID)
	}

	return ids
}
