// Package objectid generates and validates the 24-hex-character identifiers
// used for every persisted entity. Identifiers are cryptographically random
// with a creation-time prefix, so they sort roughly by age.
package objectid
