// Package desk exposes the desk API under an organization. Desk-level
// routes admit desk role holders, organization role holders and multi-desk
// role holders of the owning organization.
package desk

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/acl"
	"github.com/cleardesk/cleardesk/internal/auth"
	"github.com/cleardesk/cleardesk/internal/config"
	controller "github.com/cleardesk/cleardesk/internal/db/controller/desk"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/web/handler"
)

// Path is the base path of the desk API.
const Path = handler.APIBase + "/organization/:orgId/desk"

// Service is the desk API handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the desk API handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the desk handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Post(Path,
		auth.Require(s.orgTarget(acl.PermOrganizationDeskCreate)),
		s.Create,
	)
	app.Get(Path,
		auth.Require(s.orgTarget(acl.PermOrganizationDeskRead)),
		s.List,
	)
	app.Get(Path+"/:deskId",
		auth.Require(s.deskTarget(acl.PermDeskRead, acl.PermOrganizationDeskRead, acl.PermMultiDeskRead)),
		s.Get,
	)
	app.Put(Path+"/:deskId",
		auth.Require(s.deskTarget(acl.PermDeskUpdate, acl.PermOrganizationDeskUpdate, acl.PermMultiDeskUpdate)),
		s.Update,
	)
}

func (s *Service) orgTarget(perm string) auth.RequirementBuilder {
	return func(c *fiber.Ctx) (acl.Requirement, acl.Target, error) {
		orgID, err := handler.PathID(c, "orgId")
		if err != nil {
			return nil, acl.Target{}, err
		}

		return acl.Group(perm), acl.Target{OrganizationID: orgID}, nil
	}
}

// deskTarget resolves against the desk in the path. The multi-desk template
// is substituted with the path organization, so a multi-desk role only
// passes when it is owned by that organization and the desk belongs to it.
func (s *Service) deskTarget(deskPerm, orgPerm, multiPerm string) auth.RequirementBuilder {
	return func(c *fiber.Ctx) (acl.Requirement, acl.Target, error) {
		orgID, err := handler.PathID(c, "orgId")
		if err != nil {
			return nil, acl.Target{}, err
		}

		deskID, err := handler.PathID(c, "deskId")
		if err != nil {
			return nil, acl.Target{}, err
		}

		found, err := controller.GetByID(s.db, deskID)
		if err != nil {
			if errors.Is(err, controller.ErrDeskNotFound) {
				return nil, acl.Target{}, fiber.NewError(fiber.StatusNotFound, "desk not found")
			}

			return nil, acl.Target{}, err
		}

		// A desk owned by another organization must read as missing.
		if found.OrganizationID != orgID {
			return nil, acl.Target{}, fiber.NewError(fiber.StatusNotFound, "desk not found")
		}

		required := acl.Group(deskPerm).
			Or(orgPerm).
			Or(acl.Substitute(multiPerm, orgID))

		target := acl.Target{
			OrganizationID:     orgID,
			DeskID:             deskID,
			DeskOrganizationID: found.OrganizationID,
		}

		return required, target, nil
	}
}

type upsertRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type view struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	OrganizationID string    `json:"organizationId"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toView(d *models.Desk) view {
	return view{ID: d.ID, Name: d.Name, OrganizationID: d.OrganizationID, CreatedAt: d.CreatedAt}
}

// Create handles desk creation under the path organization.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(upsertRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err)
	}

	created, err := controller.Create(s.db, c.Params("orgId"), req.Name)
	if err != nil {
		return s.fail(c, err, "failed to create desk")
	}

	return c.Status(fiber.StatusCreated).JSON(toView(created))
}

// Get handles a single desk read, tenant checked.
func (s *Service) Get(c *fiber.Ctx) error {
	found, err := controller.GetForOrganization(s.db, c.Params("orgId"), c.Params("deskId"))
	if err != nil {
		return s.fail(c, err, "failed to load desk")
	}

	return c.JSON(toView(found))
}

// Update handles renaming a desk.
func (s *Service) Update(c *fiber.Ctx) error {
	req := new(upsertRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err)
	}

	target, err := controller.GetForOrganization(s.db, c.Params("orgId"), c.Params("deskId"))
	if err != nil {
		return s.fail(c, err, "failed to load desk")
	}

	if err := controller.Update(s.db, target, req.Name); err != nil {
		return s.fail(c, err, "failed to update desk")
	}

	return c.JSON(toView(target))
}

// List handles the paged desk listing of one organization.
func (s *Service) List(c *fiber.Ctx) error {
	page, err := controller.List(s.db, c.Params("orgId"), handler.ListRequest(c))
	if err != nil {
		return s.fail(c, err, "failed to list desks")
	}

	items := make([]view, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toView(&page.Items[i]))
	}

	return c.JSON(handler.PageResponse{Items: items, TotalCount: page.TotalCount})
}

// fail translates controller errors to API responses.
func (s *Service) fail(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, controller.ErrDeskNotFound),
		errors.Is(err, controller.ErrOrganizationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, controller.ErrNameEmpty):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Error().Err(err).Msg(logMsg)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
