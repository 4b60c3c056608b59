// Package http implements the REST API of the daily task and reflection
// backend.
//
// Every response uses the envelope {"success", "message", "data"}. Handlers
// translate service errors through an ordered table in errors_mapper.go.
// Tracing, access logging, panic recovery, compression, request timeouts,
// bearer authentication and login rate limiting are applied here before
// requests reach the service layer.
package http
