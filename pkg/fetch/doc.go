// Package fetch retrieves the avatar configuration over HTTP.
//
// A single GET is issued against {BaseURL}/api/avatar-config. Transport
// failures, non-2xx statuses and undecodable bodies are reported as
// distinct error kinds ([ErrTransport], [ErrStatus], [ErrDecode]) so
// callers can log them, but they are all the same "fetch failed" outcome
// for the settings synchronizer.
//
// # Usage
//
//	f := fetch.NewHTTPFetcher(&http.Client{Timeout: 10 * time.Second}, "http://localhost:8080")
//	cfg, err := f.Fetch(ctx)
//
// # Custom Fetchers
//
// Implement the Fetcher interface to read configuration from another
// source (files, message brokers, test fakes).
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package fetch
