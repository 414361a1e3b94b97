package github

import (
	"net/http"
)

// DefaultRawHost is the raw-content host for github.com repositories.
const DefaultRawHost = "raw.githubusercontent.com"

// Service bundles the repository discovery and retrieval operations: access
// checks, tree walks, file scans, and content fetches. A Service holds no
// per-invocation state; every call stands alone and access results are never
// cached, since a repository's accessibility can change between calls.
type Service struct {
	api     API
	rawHost string
	http    *http.Client
}

// NewService creates a Service over the given hosting API. rawHost is the
// host that download locators are composed against; empty selects
// DefaultRawHost.
func NewService(api API, rawHost string) *Service {
	if rawHost == "" {
		rawHost = DefaultRawHost
	}
	return &Service{
		api:     api,
		rawHost: rawHost,
		http:    &http.Client{},
	}
}

// RawHost returns the configured raw-content host.
func (s *Service) RawHost() string {
	return s.rawHost
}
