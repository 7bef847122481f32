// Package main provides the entry point for the ClearDesk service. It runs
// a Fiber based JSON API managing organizations, desks, roles and role
// assignments with multi-scope role based access control. The application
// uses gorm for data persistence and verifies HS256 bearer tokens issued by
// the platform's identity service.
package main
