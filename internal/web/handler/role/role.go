// Package role exposes the role administration API for all four scopes.
// Each scope family gets its own route tree; the handlers behind them are
// shared and parameterized by the family.
package role

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
	deskcontroller "github.com/cleardesk/cleardesk/internal/db/controller/desk"
	controller "github.com/cleardesk/cleardesk/internal/db/controller/role"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/web/handler"
)

// Base paths of the four role APIs.
const (
	ClearerPath      = handler.APIBase + "/clearer/role"
	OrganizationPath = handler.APIBase + "/organization/:orgId/role"
	DeskPath         = handler.APIBase + "/organization/:orgId/desk/:deskId/role"
	MultiDeskPath    = handler.APIBase + "/organization/:orgId/multidesk/role"
)

// Service is the role API handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the role API handler.
var Handler = Service{} //nolint:gochecknoglobals

// family binds one scope's route tree to its guards and scoped accessors.
type family struct {
	scope acl.Scope
	path  string

	// guard builders per operation kind
	create acl.Requirement
	read   acl.Requirement
	update acl.Requirement
	assign acl.Requirement

	// needsDeskTarget selects desk-target resolution for the guards.
	needsDeskTarget bool

	// get retrieves a role tenant checked for this family.
	get func(db *gorm.DB, c *fiber.Ctx) (*models.Role, error)
	// createParams fills the owner references from the path.
	createParams func(c *fiber.Ctx, params *controller.CreateParams)
	// filter restricts List to this family's owner.
	filter func(c *fiber.Ctx) controller.ListFilter
}

// Init initializes the role handler and registers the route trees of all
// four scopes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	families := []family{
		{
			scope:  acl.ScopeClearer,
			path:   ClearerPath,
			create: acl.Group(acl.PermClearerRoleCreate),
			read:   acl.Group(acl.PermClearerRoleRead),
			update: acl.Group(acl.PermClearerRoleUpdate),
			assign: acl.Group(acl.PermClearerRoleAssign),
			get: func(db *gorm.DB, c *fiber.Ctx) (*models.Role, error) {
				return controller.GetClearerByID(db, c.Params("roleId"))
			},
			createParams: func(*fiber.Ctx, *controller.CreateParams) {},
			filter: func(*fiber.Ctx) controller.ListFilter {
				return controller.ListFilter{Scope: acl.ScopeClearer}
			},
		},
		{
			scope:  acl.ScopeOrganization,
			path:   OrganizationPath,
			create: acl.Group(acl.PermOrganizationRoleCreate),
			read:   acl.Group(acl.PermOrganizationRoleRead),
			update: acl.Group(acl.PermOrganizationRoleUpdate),
			assign: acl.Group(acl.PermOrganizationRoleAssign),
			get: func(db *gorm.DB, c *fiber.Ctx) (*models.Role, error) {
				return controller.GetOrganizationByID(db, c.Params("roleId"), c.Params("orgId"))
			},
			createParams: func(c *fiber.Ctx, params *controller.CreateParams) {
				params.OrganizationID = c.Params("orgId")
			},
			filter: func(c *fiber.Ctx) controller.ListFilter {
				return controller.ListFilter{Scope: acl.ScopeOrganization, OrganizationID: c.Params("orgId")}
			},
		},
		{
			scope:           acl.ScopeDesk,
			path:            DeskPath,
			create:          deskRequirement(acl.PermDeskRoleCreate, acl.PermOrganizationRoleCreate, acl.PermMultiDeskRoleCreate),
			read:            deskRequirement(acl.PermDeskRoleRead, acl.PermOrganizationRoleRead, acl.PermMultiDeskRoleRead),
			update:          deskRequirement(acl.PermDeskRoleUpdate, acl.PermOrganizationRoleUpdate, acl.PermMultiDeskRoleUpdate),
			assign:          deskRequirement(acl.PermDeskRoleAssign, acl.PermOrganizationRoleAssign, acl.PermMultiDeskRoleAssign),
			needsDeskTarget: true,
			get: func(db *gorm.DB, c *fiber.Ctx) (*models.Role, error) {
				return controller.GetDeskByID(db, c.Params("roleId"), c.Params("deskId"))
			},
			createParams: func(c *fiber.Ctx, params *controller.CreateParams) {
				params.DeskID = c.Params("deskId")
			},
			filter: func(c *fiber.Ctx) controller.ListFilter {
				return controller.ListFilter{Scope: acl.ScopeDesk, DeskID: c.Params("deskId")}
			},
		},
		{
			scope:  acl.ScopeMultiDesk,
			path:   MultiDeskPath,
			create: acl.Group(acl.PermOrganizationRoleCreate),
			read:   acl.Group(acl.PermOrganizationRoleRead),
			update: acl.Group(acl.PermOrganizationRoleUpdate),
			assign: acl.Group(acl.PermOrganizationRoleAssign),
			get: func(db *gorm.DB, c *fiber.Ctx) (*models.Role, error) {
				return controller.GetMultiByID(db, c.Params("roleId"), c.Params("orgId"))
			},
			createParams: func(c *fiber.Ctx, params *controller.CreateParams) {
				params.OrganizationID = c.Params("orgId")
			},
			filter: func(c *fiber.Ctx) controller.ListFilter {
				return controller.ListFilter{Scope: acl.ScopeMultiDesk, OrganizationID: c.Params("orgId")}
			},
		},
	}

	for i := range families {
		s.register(app, families[i])
	}
}

func (s *Service) register(app *fiber.App, f family) {
	app.Post(f.path, auth.Require(s.guard(f, f.create)), s.create(f))
	app.Get(f.path, auth.Require(s.guard(f, f.read)), s.list(f))
	app.Get(f.path+"/:roleId", auth.Require(s.guard(f, f.read)), s.get(f))
	app.Put(f.path+"/:roleId", auth.Require(s.guard(f, f.update)), s.update(f))
	app.Post(f.path+"/:roleId/assignment",
		auth.RequireSecondFactor(),
		auth.Require(s.guard(f, f.assign)),
		s.grant(f),
	)
	app.Delete(f.path+"/:roleId/assignment/:userId",
		auth.RequireSecondFactor(),
		auth.Require(s.guard(f, f.assign)),
		s.revoke(f),
	)
}

// deskRequirement admits desk role holders, organization role holders and
// multi-desk role holders. The multi-desk template is substituted with the
// path organization id inside the guard.
func deskRequirement(deskPerm, orgPerm, multiTemplate string) acl.Requirement {
	return acl.Group(deskPerm).Or(orgPerm).Or(multiTemplate)
}

// guard builds the requirement and resolution target for one route of a
// family. Multi-desk templates inside the requirement are substituted with
// the path organization so the substituted form matches what Resolve yields
// for the holder.
func (s *Service) guard(f family, required acl.Requirement) auth.RequirementBuilder {
	return func(c *fiber.Ctx) (acl.Requirement, acl.Target, error) {
		var target acl.Target

		if f.scope != acl.ScopeClearer {
			orgID, err := handler.PathID(c, "orgId")
			if err != nil {
				return nil, acl.Target{}, err
			}

			target.OrganizationID = orgID
		}

		if f.needsDeskTarget {
			deskID, err := handler.PathID(c, "deskId")
			if err != nil {
				return nil, acl.Target{}, err
			}

			found, err := deskcontroller.GetByID(s.db, deskID)
			if err != nil {
				if errors.Is(err, deskcontroller.ErrDeskNotFound) {
					return nil, acl.Target{}, fiber.NewError(fiber.StatusNotFound, "desk not found")
				}

				return nil, acl.Target{}, err
			}

			// A desk owned by another organization must read as missing.
			if found.OrganizationID != target.OrganizationID {
				return nil, acl.Target{}, fiber.NewError(fiber.StatusNotFound, "desk not found")
			}

			target.DeskID = deskID
			target.DeskOrganizationID = found.OrganizationID

			substituted := make(acl.Requirement, 0, len(required))
			for _, group := range required {
				perms := make([]string, len(group))
				for i, perm := range group {
					perms[i] = acl.Substitute(perm, target.OrganizationID)
				}

				substituted = append(substituted, perms)
			}

			required = substituted
		}

		return required, target, nil
	}
}

type createRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Permissions []string `json:"permissions"`
}

type updateRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=255"`
	Permissions *[]string `json:"permissions"`
	Disabled    *bool     `json:"disabled"`
}

type assignRequest struct {
	UserID string `json:"userId" validate:"required,len=24,hexadecimal,lowercase"`
}

type view struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Scope          acl.Scope `json:"scope"`
	OrganizationID string    `json:"organizationId,omitempty"`
	DeskID         string    `json:"deskId,omitempty"`
	Permissions    []string  `json:"permissions"`
	Default        bool      `json:"default"`
	Disabled       bool      `json:"disabled"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toView(r *models.Role) view {
	v := view{
		ID:          r.ID,
		Name:        r.Name,
		Scope:       r.Scope,
		Permissions: r.Permissions,
		Default:     r.Default,
		Disabled:    r.Disabled,
		CreatedAt:   r.CreatedAt,
	}

	if v.Permissions == nil {
		v.Permissions = []string{}
	}

	if r.OrganizationID != nil {
		v.OrganizationID = *r.OrganizationID
	}

	if r.DeskID != nil {
		v.DeskID = *r.DeskID
	}

	return v
}

func (s *Service) create(f family) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(createRequest)
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if err := s.validator.Struct(req); err != nil {
			return handler.ValidationError(c, err)
		}

		params := controller.CreateParams{
			Scope:       f.scope,
			Name:        req.Name,
			Permissions: req.Permissions,
		}
		f.createParams(c, &params)

		created, err := controller.Create(s.db, params, auth.CurrentUser(c))
		if err != nil {
			return s.fail(c, err, "failed to create role")
		}

		return c.Status(fiber.StatusCreated).JSON(toView(created))
	}
}

func (s *Service) get(f family) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := handler.PathID(c, "roleId"); err != nil {
			return s.fiberError(c, err)
		}

		found, err := f.get(s.db, c)
		if err != nil {
			return s.fail(c, err, "failed to load role")
		}

		return c.JSON(toView(found))
	}
}

func (s *Service) update(f family) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := handler.PathID(c, "roleId"); err != nil {
			return s.fiberError(c, err)
		}

		req := new(updateRequest)
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if err := s.validator.Struct(req); err != nil {
			return handler.ValidationError(c, err)
		}

		target, err := f.get(s.db, c)
		if err != nil {
			return s.fail(c, err, "failed to load role")
		}

		err = controller.Update(s.db, target, controller.UpdateParams{
			Name:        req.Name,
			Permissions: req.Permissions,
			Disabled:    req.Disabled,
		})
		if err != nil {
			return s.fail(c, err, "failed to update role")
		}

		return c.JSON(toView(target))
	}
}

func (s *Service) list(f family) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := controller.List(s.db, f.filter(c), handler.ListRequest(c))
		if err != nil {
			return s.fail(c, err, "failed to list roles")
		}

		items := make([]view, 0, len(page.Items))
		for i := range page.Items {
			items = append(items, toView(&page.Items[i]))
		}

		return c.JSON(handler.PageResponse{Items: items, TotalCount: page.TotalCount})
	}
}

func (s *Service) grant(f family) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := handler.PathID(c, "roleId"); err != nil {
			return s.fiberError(c, err)
		}

		req := new(assignRequest)
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if err := s.validator.Struct(req); err != nil {
			return handler.ValidationError(c, err)
		}

		// Tenant check first so a cross-tenant role id reads as missing.
		target, err := f.get(s.db, c)
		if err != nil {
			return s.fail(c, err, "failed to load role")
		}

		assignment, err := controller.Grant(s.db, req.UserID, target.ID, auth.CurrentUser(c))
		if err != nil {
			return s.fail(c, err, "failed to grant role")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"userId":     assignment.UserID,
			"roleId":     assignment.RoleID,
			"assignedBy": assignment.AssignedByID,
			"assignedAt": assignment.AssignedAt,
		})
	}
}

func (s *Service) revoke(f family) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := handler.PathID(c, "roleId"); err != nil {
			return s.fiberError(c, err)
		}

		userID, err := handler.PathID(c, "userId")
		if err != nil {
			return s.fiberError(c, err)
		}

		target, err := f.get(s.db, c)
		if err != nil {
			return s.fail(c, err, "failed to load role")
		}

		if err := controller.Revoke(s.db, userID, target.ID); err != nil {
			return s.fail(c, err, "failed to revoke role")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func (s *Service) fiberError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// fail translates controller errors to API responses.
func (s *Service) fail(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, controller.ErrRoleNotFound),
		errors.Is(err, controller.ErrOrganizationNotFound),
		errors.Is(err, controller.ErrDeskNotFound),
		errors.Is(err, controller.ErrUserNotFound),
		errors.Is(err, controller.ErrAssignmentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, controller.ErrInvalidPermission),
		errors.Is(err, controller.ErrRoleNameEmpty),
		errors.Is(err, controller.ErrScopeUnknown),
		errors.Is(err, controller.ErrScopeOwnerMismatch):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, controller.ErrAlreadyAssigned),
		errors.Is(err, controller.ErrDefaultRoleExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Error().Err(err).Msg(logMsg)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
