package acl

import "errors"

// ErrPermissionMissing is returned when the caller's resolved permission
// set does not satisfy any required group.
var ErrPermissionMissing = errors.New("required permission missing")
