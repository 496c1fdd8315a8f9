// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	jose "github.com/go-jose/go-jose/v3"

	"github.com/fitconnect-go/apiclient/common"
	"github.com/fitconnect-go/apiclient/jwe"
)

const (
	joseMediaType = "application/jose"
	jsonMediaType = "application/json"
)

// DestinationInfo models the destination descriptor served by the
// submission API.
type DestinationInfo struct {
	DestinationID string               `json:"destinationId"`
	Status        string               `json:"status"`
	EncryptionKid string               `json:"encryptionKid"`
	Services      []DestinationService `json:"services"`
}

// DestinationService is one administrative service offered by a destination.
type DestinationService struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// SubmitConfig drives the encrypted submission protocol against one
// submission API endpoint. Each call uses whatever bearer token the client's
// authenticator currently holds; tokens are never refreshed mid-flow.
type SubmitConfig struct {
	Client  *common.Client // HTTP(s) client connection configuration
	BaseURI string         // base URL of the submission API, including version prefix
}

// CreateSubmission announces a new submission to the destination: the
// attachment identifiers are declared up front, and the service assigns the
// submission identifier. The Submission is returned only on success; there
// is no partially-created state.
func (cfg SubmitConfig) CreateSubmission(
	destinationID, serviceIdentifier, serviceName string,
	attachments []*Attachment,
) (*Submission, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}

	if cfg.Client == nil {
		cfg.Client = common.NewClient(nil)
	}

	sub := NewSubmission(destinationID, serviceIdentifier, serviceName, attachments)

	body, err := json.Marshal(sub.CreateRequest())
	if err != nil {
		return nil, fmt.Errorf("marshaling create request: %w", err)
	}

	res, err := cfg.Client.PostResource(body, jsonMediaType, cfg.BaseURI+"/submissions")
	if err != nil {
		return nil, fmt.Errorf("create submission request failed: %w", err)
	}

	if !success(res) {
		return nil, &CreationError{
			DestinationID: destinationID,
			Response:      common.NewResponseError(res),
		}
	}

	created := struct {
		SubmissionID string `json:"submissionId"`
	}{}

	if err := common.DecodeJSONBody(res, &created); err != nil {
		return nil, fmt.Errorf("failure decoding create response: %w", err)
	}

	if created.SubmissionID == "" {
		return nil, errors.New("create response carries no submissionId")
	}

	sub.SubmissionID = created.SubmissionID

	cfg.Client.Logger.Info().
		Str("submission", sub.SubmissionID).
		Str("destination", sub.DestinationID).
		Msg("submission created")

	return sub, nil
}

// DestinationInfo fetches the destination descriptor.
func (cfg SubmitConfig) DestinationInfo(destinationID string) (*DestinationInfo, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}

	if cfg.Client == nil {
		cfg.Client = common.NewClient(nil)
	}

	uri := fmt.Sprintf("%s/destinations/%s", cfg.BaseURI, destinationID)

	res, err := cfg.Client.GetResource(uri, true)
	if err != nil {
		return nil, fmt.Errorf("destination info request failed: %w", err)
	}

	if !success(res) {
		return nil, &LookupError{
			DestinationID: destinationID,
			Response:      common.NewResponseError(res),
		}
	}

	info := DestinationInfo{}

	if err := common.DecodeJSONBody(res, &info); err != nil {
		return nil, fmt.Errorf("failure decoding destination info: %w", err)
	}

	return &info, nil
}

// DestinationKey resolves the destination's current encryption key: the
// descriptor names the kid, and the key endpoint serves the JWK.
func (cfg SubmitConfig) DestinationKey(destinationID string) (*jose.JSONWebKey, error) {
	if cfg.Client == nil {
		cfg.Client = common.NewClient(nil)
	}

	info, err := cfg.DestinationInfo(destinationID)
	if err != nil {
		return nil, err
	}

	if info.EncryptionKid == "" {
		return nil, &LookupError{
			DestinationID: destinationID,
			Reason:        "destination declares no encryption key",
		}
	}

	uri := fmt.Sprintf("%s/destinations/%s/keys/%s", cfg.BaseURI, destinationID, info.EncryptionKid)

	// the key endpoint is served unauthenticated
	res, err := cfg.Client.GetResource(uri, false)
	if err != nil {
		return nil, fmt.Errorf("destination key request failed: %w", err)
	}

	if !success(res) {
		return nil, &LookupError{
			DestinationID: destinationID,
			Response:      common.NewResponseError(res),
		}
	}

	key, err := jwe.ParseKey(common.ReadBody(res))
	if err != nil {
		return nil, fmt.Errorf("destination %q: %w", destinationID, err)
	}

	return key, nil
}

// Send drives an already-created submission to completion: resolve the
// destination's encryption key, encrypt and upload every attachment in
// declaration order, then encrypt the metadata and finalize. The first
// failure aborts the remaining steps; already-uploaded attachments are not
// rolled back. On success the service's response to the finalize call is
// returned as raw JSON.
func (cfg SubmitConfig) Send(sub *Submission, meta *Metadata) (json.RawMessage, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}

	if sub == nil {
		return nil, errors.New("bad configuration: nil submission")
	}

	// calling Send before the submission was created is a programming
	// error, not a retryable failure
	if sub.SubmissionID == "" {
		return nil, errors.New("bad submission: not created yet")
	}

	if meta == nil {
		return nil, errors.New("bad configuration: nil metadata")
	}

	if cfg.Client == nil {
		cfg.Client = common.NewClient(nil)
	}

	// the key is resolved before any attachment is touched, so a lookup
	// failure never leaves attachments half-uploaded
	key, err := cfg.DestinationKey(sub.DestinationID)
	if err != nil {
		return nil, err
	}

	for _, att := range sub.Attachments {
		if err := cfg.uploadAttachment(sub, att, key); err != nil {
			return nil, err
		}
	}

	token, err := jwe.EncryptJSON(meta, key)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(struct {
		EncryptedMetadata string `json:"encryptedMetadata"`
	}{token})
	if err != nil {
		return nil, fmt.Errorf("marshaling finalize request: %w", err)
	}

	uri := fmt.Sprintf("%s/submissions/%s", cfg.BaseURI, sub.SubmissionID)

	res, err := cfg.Client.PutResource(body, jsonMediaType, uri)
	if err != nil {
		return nil, fmt.Errorf("finalize request failed: %w", err)
	}

	if !success(res) {
		return nil, &FinalizationError{
			SubmissionID: sub.SubmissionID,
			Response:     common.NewResponseError(res),
		}
	}

	cfg.Client.Logger.Info().
		Str("submission", sub.SubmissionID).
		Msg("submission sent")

	return common.ReadBody(res), nil
}

// uploadAttachment reads the attachment's plaintext, encrypts it under the
// destination key and uploads the compact token.
func (cfg SubmitConfig) uploadAttachment(sub *Submission, att *Attachment, key *jose.JSONWebKey) error {
	// fail fast on an unreadable file; never encrypt substitute content
	data, err := att.Read()
	if err != nil {
		return err
	}

	token, err := jwe.EncryptBytes(data, key)
	if err != nil {
		return err
	}

	uri := fmt.Sprintf("%s/submissions/%s/attachments/%s", cfg.BaseURI, sub.SubmissionID, att.ID)

	res, err := cfg.Client.PutResource([]byte(token), joseMediaType, uri)
	if err != nil {
		return fmt.Errorf("attachment upload request failed: %w", err)
	}

	if !success(res) {
		return &UploadError{
			SubmissionID: sub.SubmissionID,
			AttachmentID: att.ID,
			Response:     common.NewResponseError(res),
		}
	}

	cfg.Client.Logger.Debug().
		Str("submission", sub.SubmissionID).
		Str("attachment", att.ID).
		Msg("attachment uploaded")

	return nil
}

// check makes sure that the config object is in good shape
func (cfg SubmitConfig) check() error {
	if cfg.BaseURI == "" {
		return errors.New("bad configuration: no API endpoint")
	}

	return nil
}

func success(res *http.Response) bool {
	return res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices
}
