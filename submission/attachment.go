// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

// Package submission implements the encrypted submission protocol of the
// FitConnect submission API: announcing a submission, uploading encrypted
// attachments, and finalizing with encrypted metadata.
package submission

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Attachment describes one file to submit. The identifier is assigned at
// construction; it appears both in the announcement and in the upload URL
// and the two must stay byte-identical.
type Attachment struct {
	ID          string
	Path        string
	Filename    string
	MediaType   *string // nil when the extension is not recognized
	Description string
	Purpose     string
}

// NewAttachment constructs an Attachment from a filesystem path with a fresh
// random identifier. purpose defaults to "attachment" when empty. The file
// itself is not touched until its content or digest is needed.
func NewAttachment(path, description, purpose string) *Attachment {
	if purpose == "" {
		purpose = "attachment"
	}

	return &Attachment{
		ID:          uuid.NewString(),
		Path:        path,
		Filename:    filepath.Base(path),
		MediaType:   detectMediaType(path),
		Description: description,
		Purpose:     purpose,
	}
}

// Read returns the file's raw content. A missing or unreadable file is an
// error; content is never silently substituted.
func (o *Attachment) Read() ([]byte, error) {
	data, err := os.ReadFile(o.Path)
	if err != nil {
		return nil, fmt.Errorf("reading attachment %q: %w", o.ID, err)
	}

	return data, nil
}

// Digest re-reads the file and returns the hex-encoded SHA-512 over its raw
// bytes. The digest always describes the plaintext, never the encrypted
// form.
func (o *Attachment) Digest() (string, error) {
	data, err := o.Read()
	if err != nil {
		return "", err
	}

	sum := sha512.Sum512(data)

	return hex.EncodeToString(sum[:]), nil
}

// Hash is the digest entry of an attachment metadata record.
type Hash struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// MetadataRecord is the declaration of one attachment inside the submission
// metadata. MimeType is null when the extension was not recognized.
type MetadataRecord struct {
	Hash         Hash    `json:"hash"`
	Purpose      string  `json:"purpose"`
	Filename     string  `json:"filename"`
	Description  string  `json:"description"`
	MimeType     *string `json:"mimeType"`
	AttachmentID string  `json:"attachmentId"`
}

// MetadataRecord computes the attachment's metadata declaration, reading the
// file to digest it.
func (o *Attachment) MetadataRecord() (*MetadataRecord, error) {
	digest, err := o.Digest()
	if err != nil {
		return nil, err
	}

	return &MetadataRecord{
		Hash:         Hash{Type: "sha512", Content: digest},
		Purpose:      o.Purpose,
		Filename:     o.Filename,
		Description:  o.Description,
		MimeType:     o.MediaType,
		AttachmentID: o.ID,
	}, nil
}

// detectMediaType looks the media type up from the filename extension,
// dropping any parameters (text/plain, not "text/plain; charset=utf-8").
func detectMediaType(path string) *string {
	t := mime.TypeByExtension(filepath.Ext(path))
	if t == "" {
		return nil
	}

	if mt, _, err := mime.ParseMediaType(t); err == nil {
		t = mt
	}

	return &t
}
