// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0
package submission

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmission_CreateRequest(t *testing.T) {
	att := NewAttachment(writeTestFile(t, "a.pdf", []byte("%PDF-1.4")), "", "")

	sub := NewSubmission("D1", "svc", "Service", []*Attachment{att})

	raw, err := json.Marshal(sub.CreateRequest())
	require.NoError(t, err)

	expected := fmt.Sprintf(
		`{"destinationId":"D1","serviceType":{"name":"Service","identifier":"svc"},"announcedAttachments":[%q]}`,
		att.ID,
	)
	assert.Equal(t, expected, string(raw))
}

func TestSubmission_CreateRequest_no_attachments(t *testing.T) {
	sub := NewSubmission("D1", "svc", "Service", nil)

	raw, err := json.Marshal(sub.CreateRequest())
	require.NoError(t, err)

	assert.Equal(t,
		`{"destinationId":"D1","serviceType":{"name":"Service","identifier":"svc"},"announcedAttachments":[]}`,
		string(raw))
}

func TestSubmission_AttachmentIDs_order(t *testing.T) {
	var attachments []*Attachment
	for i := 0; i < 5; i++ {
		path := writeTestFile(t, fmt.Sprintf("part-%d.txt", i), []byte{byte(i)})
		attachments = append(attachments, NewAttachment(path, "", ""))
	}

	sub := NewSubmission("D1", "svc", "Service", attachments)

	ids := sub.AttachmentIDs()
	require.Len(t, ids, 5)
	for i, a := range attachments {
		assert.Equal(t, a.ID, ids[i])
	}

	// metadata declares the same identifiers in the same order as the
	// announcement
	meta, err := sub.BuildMetadata(MetadataParams{
		ApplicationDate:     "2023-10-01",
		SenderReference:     "ref-1",
		SubmissionSchemaURI: "https://schema.example/s1.json",
		ReplyEMail:          "reply@sender.example",
	})
	require.NoError(t, err)

	require.Len(t, meta.ContentStructure.Attachments, 5)
	for i, rec := range meta.ContentStructure.Attachments {
		assert.Equal(t, ids[i], rec.AttachmentID)
	}
}

func TestSubmission_BuildMetadata_optional_fields_omitted(t *testing.T) {
	sub := NewSubmission("D1", "svc", "Service", nil)

	meta, err := sub.BuildMetadata(MetadataParams{
		ApplicationDate:     "2023-10-01",
		SenderReference:     "ref-1",
		SubmissionSchemaURI: "https://schema.example/s1.json",
		ReplyEMail:          "reply@sender.example",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(meta)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// absent inputs are omitted from the output object, not emitted as
	// null
	assert.NotContains(t, decoded, "$schema")
	assert.NotContains(t, decoded, "authenticationInformation")
	assert.NotContains(t, decoded, "paymentInformation")

	assert.JSONEq(t, `{
		"contentStructure": {
			"data": {
				"submissionSchema": {
					"schemaUri": "https://schema.example/s1.json",
					"mimeType": "application/json"
				}
			},
			"attachments": []
		},
		"replyChannel": {"eMail": {"address": "reply@sender.example"}},
		"additionalReferenceInfo": {
			"senderReference": "ref-1",
			"applicationDate": "2023-10-01"
		}
	}`, string(raw))
}

func TestSubmission_BuildMetadata_optional_fields_present(t *testing.T) {
	sub := NewSubmission("D1", "svc", "Service", nil)

	meta, err := sub.BuildMetadata(MetadataParams{
		ApplicationDate:     "2023-10-01",
		SenderReference:     "ref-1",
		SubmissionSchemaURI: "https://schema.example/s1.json",
		MetadataSchemaURI:   "https://schema.example/metadata.json",
		ReplyEMail:          "reply@sender.example",
		AuthenticationInformation: []map[string]interface{}{
			{"type": "eID", "content": "deadbeef"},
		},
		PaymentInformation: map[string]interface{}{
			"status": "booked",
		},
	})
	require.NoError(t, err)

	raw, err := json.Marshal(meta)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "https://schema.example/metadata.json", decoded["$schema"])
	assert.Contains(t, decoded, "authenticationInformation")
	assert.Contains(t, decoded, "paymentInformation")
}
