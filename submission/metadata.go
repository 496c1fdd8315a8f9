// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

package submission

// Metadata is the document encrypted and attached when the submission is
// finalized. Optional fields left unset are omitted from the JSON output
// entirely, never emitted as null.
type Metadata struct {
	Schema                    string                   `json:"$schema,omitempty"`
	ContentStructure          ContentStructure         `json:"contentStructure"`
	ReplyChannel              ReplyChannel             `json:"replyChannel"`
	AdditionalReferenceInfo   AdditionalReferenceInfo  `json:"additionalReferenceInfo"`
	AuthenticationInformation []map[string]interface{} `json:"authenticationInformation,omitempty"`
	PaymentInformation        map[string]interface{}   `json:"paymentInformation,omitempty"`
}

type ContentStructure struct {
	Data        Data              `json:"data"`
	Attachments []*MetadataRecord `json:"attachments"`
}

type Data struct {
	SubmissionSchema SubmissionSchema `json:"submissionSchema"`
}

type SubmissionSchema struct {
	SchemaURI string `json:"schemaUri"`
	MimeType  string `json:"mimeType"`
}

type ReplyChannel struct {
	EMail EMail `json:"eMail"`
}

type EMail struct {
	Address string `json:"address"`
}

type AdditionalReferenceInfo struct {
	SenderReference string `json:"senderReference"`
	ApplicationDate string `json:"applicationDate"`
}

// MetadataParams are the caller-supplied inputs to metadata construction.
type MetadataParams struct {
	ApplicationDate     string
	SenderReference     string
	SubmissionSchemaURI string
	ReplyEMail          string

	// MetadataSchemaURI is emitted as $schema only when set.
	MetadataSchemaURI string

	AuthenticationInformation []map[string]interface{}
	PaymentInformation        map[string]interface{}
}

// BuildMetadata assembles the submission metadata from params and the
// submission's attachments, in declaration order. Each attachment is read to
// compute its digest; the first unreadable file aborts construction.
func (o *Submission) BuildMetadata(params MetadataParams) (*Metadata, error) {
	records := make([]*MetadataRecord, 0, len(o.Attachments))

	for _, a := range o.Attachments {
		rec, err := a.MetadataRecord()
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return &Metadata{
		Schema: params.MetadataSchemaURI,
		ContentStructure: ContentStructure{
			Data: Data{
				SubmissionSchema: SubmissionSchema{
					SchemaURI: params.SubmissionSchemaURI,
					MimeType:  "application/json",
				},
			},
			Attachments: records,
		},
		ReplyChannel: ReplyChannel{
			EMail: EMail{Address: params.ReplyEMail},
		},
		AdditionalReferenceInfo: AdditionalReferenceInfo{
			SenderReference: params.SenderReference,
			ApplicationDate: params.ApplicationDate,
		},
		AuthenticationInformation: params.AuthenticationInformation,
		PaymentInformation:        params.PaymentInformation,
	}, nil
}
