// Package auth provides the request authentication middleware for the API.
//
// The middleware verifies the bearer token once per request, loads the
// subject user with all role assignments and stores both in fiber.Locals
// for the route guards and handlers downstream. Suspended accounts are
// rejected even with a valid token.
//
// Usage:
//
//	app.Use(authmiddleware.New(authService, "/healthz", "/metrics"))
package auth
