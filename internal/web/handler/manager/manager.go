// Package manager exposes the manager onboarding API of an organization.
// A manager is a user affiliated with the organization who is granted the
// organization's default role at creation time.
package manager

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
	rolecontroller "github.com/cleardesk/cleardesk/internal/db/controller/role"
	controller "github.com/cleardesk/cleardesk/internal/db/controller/user"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/web/handler"
)

// Path is the base path of the manager API.
const Path = handler.APIBase + "/organization/:orgId/manager"

// Service is the manager API handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the manager API handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the manager handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Post(Path,
		auth.RequireSecondFactor(),
		auth.Require(orgTarget(acl.PermClearerManagerCreate, acl.PermOrganizationManagerCreate)),
		s.Create,
	)
	app.Get(Path,
		auth.Require(orgTarget(acl.PermClearerManagerRead, acl.PermOrganizationManagerRead)),
		s.List,
	)
	app.Get(Path+"/:userId",
		auth.Require(orgTarget(acl.PermClearerManagerRead, acl.PermOrganizationManagerRead)),
		s.Get,
	)
	app.Put(Path+"/:userId",
		auth.RequireSecondFactor(),
		auth.Require(orgTarget(acl.PermClearerManagerUpdate, acl.PermOrganizationManagerUpdate)),
		s.Update,
	)
}

// orgTarget admits a clearer operator or a sufficiently permitted member of
// the path organization.
func orgTarget(clearerPerm, orgPerm string) auth.RequirementBuilder {
	return func(c *fiber.Ctx) (acl.Requirement, acl.Target, error) {
		orgID, err := handler.PathID(c, "orgId")
		if err != nil {
			return nil, acl.Target{}, err
		}

		return acl.Group(clearerPerm).Or(orgPerm), acl.Target{OrganizationID: orgID}, nil
	}
}

type createRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=12,max=128"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

type updateRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Suspended *bool   `json:"suspended"`
}

type view struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName,omitempty"`
	LastName       string    `json:"lastName,omitempty"`
	OrganizationID string    `json:"organizationId,omitempty"`
	Suspended      bool      `json:"suspended"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toView(u *models.User) view {
	v := view{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Suspended: u.Suspended,
		CreatedAt: u.CreatedAt,
	}

	if u.OrganizationID != nil {
		v.OrganizationID = *u.OrganizationID
	}

	return v
}

// Create handles manager onboarding: user creation plus default role grant
// in one transaction.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err)
	}

	created, err := controller.CreateManager(s.db, c.Params("orgId"), controller.CreateParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, auth.CurrentUser(c))
	if err != nil {
		return s.fail(c, err, "failed to onboard manager")
	}

	return c.Status(fiber.StatusCreated).JSON(toView(created))
}

// Get handles a single manager read, tenant checked.
func (s *Service) Get(c *fiber.Ctx) error {
	found, err := s.managerInOrg(c)
	if err != nil {
		return s.fail(c, err, "failed to load manager")
	}

	return c.JSON(toView(found))
}

// Update handles manager profile updates and suspension.
func (s *Service) Update(c *fiber.Ctx) error {
	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err)
	}

	target, err := s.managerInOrg(c)
	if err != nil {
		return s.fail(c, err, "failed to load manager")
	}

	err = controller.Update(s.db, target, controller.UpdateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Suspended: req.Suspended,
	})
	if err != nil {
		return s.fail(c, err, "failed to update manager")
	}

	return c.JSON(toView(target))
}

// List handles the paged manager listing of one organization.
func (s *Service) List(c *fiber.Ctx) error {
	page, err := controller.List(s.db, c.Params("orgId"), handler.ListRequest(c))
	if err != nil {
		return s.fail(c, err, "failed to list managers")
	}

	items := make([]view, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toView(&page.Items[i]))
	}

	return c.JSON(handler.PageResponse{Items: items, TotalCount: page.TotalCount})
}

// managerInOrg loads the path user and verifies the tenant affiliation. A
// manager of another organization reads as missing.
func (s *Service) managerInOrg(c *fiber.Ctx) (*models.User, error) {
	userID, err := handler.PathID(c, "userId")
	if err != nil {
		return nil, err
	}

	found, err := controller.GetByID(s.db, userID)
	if err != nil {
		return nil, err
	}

	if found.OrganizationID == nil || *found.OrganizationID != c.Params("orgId") {
		return nil, controller.ErrUserNotFound
	}

	return found, nil
}

// fail translates controller errors to API responses.
func (s *Service) fail(c *fiber.Ctx, err error, logMsg string) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	switch {
	case errors.Is(err, controller.ErrUserNotFound),
		errors.Is(err, rolecontroller.ErrRoleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, controller.ErrEmailEmpty):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, controller.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Error().Err(err).Msg(logMsg)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
