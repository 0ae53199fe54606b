// Package auth issues and verifies bearer tokens and guards HTTP routes.
//
// Tokens are HS256 JWTs signed with a key injected once at start-up. The Gate
// middleware evaluates, per request: the public allow-list, bearer presence,
// token verification, and the first matching path rule, then exposes the
// verified Principal to handlers through both the gin and request contexts.
package auth
