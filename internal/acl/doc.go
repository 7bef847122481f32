// Package acl implements the multi-scope permission engine: the permission
// catalog, the per-request permission resolver and the authorization guard.
//
// The package is pure: it never reaches into persistence. Callers load role
// data through the db controllers and hand it to Resolve, then evaluate the
// outcome with a Requirement. This keeps every authorization decision
// reproducible from its inputs.
package acl
