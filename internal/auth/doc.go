// Package auth authenticates bearer tokens and guards Fiber routes.
//
// Tokens are HS256 signed JWTs whose subject is the user's 24-hex id. The
// request middleware (internal/web/middleware/auth) verifies the token once
// per request and stores the loaded user and claims in fiber locals; route
// guards built with Require then resolve the user's permissions through the
// acl package against a per-request target.
//
// # Route protection
//
// A guard takes a RequirementBuilder that derives both the permission
// requirement and the resolution target from the request:
//
//	app.Get("/api/v1/organization/:orgId",
//	    auth.Require(func(c *fiber.Ctx) (acl.Requirement, acl.Target, error) {
//	        orgID := c.Params("orgId")
//	        if !objectid.Valid(orgID) {
//	            return nil, acl.Target{}, fiber.NewError(fiber.StatusUnprocessableEntity, "invalid id")
//	        }
//
//	        required := acl.Group(acl.PermClearerOrganizationRead).
//	            Or(acl.PermOrganizationRead)
//
//	        return required, acl.Target{OrganizationID: orgID}, nil
//	    }),
//	    handlerFunc,
//	)
//
// Groups within a requirement combine with OR, permissions within a group
// with AND. Requests failing authentication get 401, requests failing
// authorization get 403.
//
// # Second factor
//
// Routes performing sensitive mutations additionally chain
// RequireSecondFactor, which rejects tokens that do not attest completed
// second-factor authentication. Absence of the claim counts as not
// attested.
package auth
