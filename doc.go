// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

/*
Package apiclient implements a sender client for the FitConnect submission
API: OAuth2 client-credentials authentication, end-to-end encryption of
attachments and metadata under the destination's public key, and the ordered
create / upload / finalize exchange.

# Authentication

The user configures a client-credentials authenticator for the chosen
environment and obtains a bearer token explicitly:

	env, _ := environment.Get(environment.Testing)

	a := &auth.ClientCredentialsAuthenticator{
		TokenURL:     env.TokenURL,
		ClientID:     "my-client",
		ClientSecret: "my-secret",
	}

	if _, err := a.ObtainToken(); err != nil { ... }

	client := common.NewClient(a)

The token is held until the next ObtainToken call; there is no automatic
refresh. A token rejected by the service surfaces as the service's own
response, unchanged.

# Submission

The user creates a SubmitConfig pointing at the environment's submission API
and drives the protocol through it:

	cfg := submission.SubmitConfig{
		Client:  client,
		BaseURI: env.SubmissionAPIURL,
	}

	att := submission.NewAttachment("form.pdf", "filled-in application form", "")

	sub, err := cfg.CreateSubmission(destinationID, "urn:de:fim:leika:leistung:99400048079000", "Bauantrag", []*submission.Attachment{att})
	if err != nil { ... }

	meta, err := sub.BuildMetadata(submission.MetadataParams{
		ApplicationDate:     "2023-10-01",
		SenderReference:     "my-reference-0042",
		SubmissionSchemaURI: "https://schema.fitko.de/fim/s00000009_1.0.schema.json",
		ReplyEMail:          "office@sender.example",
	})
	if err != nil { ... }

	result, err := cfg.Send(sub, meta)

Send resolves the destination's encryption key, encrypts and uploads every
attachment in declaration order, then encrypts the metadata and finalizes the
submission. Any failure aborts the remaining steps; nothing is retried and
nothing already uploaded is rolled back.
*/
package apiclient
