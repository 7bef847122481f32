package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cleardesk/cleardesk/internal/db/pagination"
	"github.com/cleardesk/cleardesk/internal/objectid"
)

// PathID reads a route parameter that must be a 24-hex identifier. A
// malformed id yields a 422 so it is never confused with a missing
// resource.
func PathID(c *fiber.Ctx, param string) (string, error) {
	id := c.Params(param)
	if !objectid.Valid(id) {
		return "", fiber.NewError(fiber.StatusUnprocessableEntity, "invalid "+param)
	}

	return id, nil
}

// ListRequest reads the paging query parameters shared by all list
// endpoints: skip, limit, search and sort ("field:desc,field2").
func ListRequest(c *fiber.Ctx) pagination.Request {
	return pagination.Request{
		Skip:   c.QueryInt("skip"),
		Limit:  c.QueryInt("limit"),
		Search: c.Query("search"),
		Sort:   pagination.ParseSort(c.Query("sort")),
	}
}

// PageResponse is the JSON envelope of a list endpoint.
type PageResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
}
