// Package http implements the HTTP transport of the syncing server.
//
// It wires the chi router, the sync and session handlers, and the middleware
// chain. Cross-cutting concerns such as session authentication, request
// tracing, access logging, and response compression live here; requests reach
// the service layer already carrying the authenticated user identity.
package http
