// Copyright 2023 Contributors to the FitConnect Go client project.
// SPDX-License-Identifier: Apache-2.0

// Package environment maps the named FitConnect deployment environments onto
// their OAuth token and submission API endpoints.
package environment

import "fmt"

// Environment is the enumeration of FitConnect deployment environments. It
// implements the pflag.Value interface.
type Environment string

const (
	// Dev is the development environment (used internally by the
	// FIT-Connect team).
	Dev Environment = "dev"
	// Testing is the test environment that can be used freely.
	Testing Environment = "testing"
	// Staging is the staging environment to test updates before deploying
	// to production.
	Staging Environment = "staging"
	// Production is the production environment.
	Production Environment = "production"
)

// Config holds the service endpoints of one environment.
type Config struct {
	// TokenURL is the OAuth2 token endpoint.
	TokenURL string

	// SubmissionAPIURL is the base URL of the submission API, including
	// the version prefix.
	SubmissionAPIURL string
}

var envConfig = map[Environment]Config{
	Dev: {
		TokenURL:         "https://auth-dev.fit-connect.fitko.dev/token",
		SubmissionAPIURL: "https://submission-api-dev.fit-connect.fitko.dev/v1",
	},
	Testing: {
		TokenURL:         "https://auth-testing.fit-connect.fitko.dev/token",
		SubmissionAPIURL: "https://submission-api-testing.fit-connect.fitko.dev/v1",
	},
	Staging: {
		TokenURL:         "https://auth-refz.fit-connect.fitko.net/token",
		SubmissionAPIURL: "https://submission-api-refz.fit-connect.niedersachsen.de/v1",
	},
	Production: {
		TokenURL:         "https://auth-prod.fit-connect.fitko.net/token",
		SubmissionAPIURL: "https://submission-api-prod.fit-connect.niedersachsen.de/v1",
	},
}

// Get returns the endpoint configuration for the supplied environment.
func Get(env Environment) (Config, error) {
	cfg, ok := envConfig[env]
	if !ok {
		return Config{}, fmt.Errorf("unknown environment %q", env)
	}

	return cfg, nil
}

// String representation of the Environment
func (o *Environment) String() string {
	return string(*o)
}

// Set the value of the Environment
func (o *Environment) Set(v string) error {
	switch v {
	case "dev", "development":
		*o = Dev
	case "testing", "test":
		*o = Testing
	case "staging":
		*o = Staging
	case "production", "prod":
		*o = Production
	default:
		return fmt.Errorf("unexpected Environment %q", v)
	}

	return nil
}

// Type returns the string representing the type name (used by pflag).
func (o *Environment) Type() string {
	return "Environment"
}
