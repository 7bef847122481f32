// Package organization exposes the organization API: CRUD for tenants and
// their clearing account links.
package organization

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
	controller "github.com/cleardesk/cleardesk/internal/db/controller/organization"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/web/handler"
)

// Path is the base path of the organization API.
const Path = handler.APIBase + "/organization"

// Service is the organization API handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the organization API handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the organization handler and registers its routes.
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
		auth.Require(clearerOnly(acl.PermClearerOrganizationCreate)),
		s.Create,
	)
	app.Get(Path,
		auth.Require(clearerOnly(acl.PermClearerOrganizationRead)),
		s.List,
	)
	app.Get(Path+"/:orgId",
		auth.Require(orgTarget(acl.PermClearerOrganizationRead, acl.PermOrganizationRead)),
		s.Get,
	)
	app.Put(Path+"/:orgId",
		auth.RequireSecondFactor(),
		auth.Require(orgTarget(acl.PermClearerOrganizationUpdate, acl.PermOrganizationUpdate)),
		s.Update,
	)
	app.Get(Path+"/:orgId/account",
		auth.Require(orgTarget(acl.PermClearerOrganizationRead, acl.PermOrganizationAccountRead)),
		s.ListAccounts,
	)
	app.Post(Path+"/:orgId/account",
		auth.RequireSecondFactor(),
		auth.Require(orgTarget(acl.PermClearerAccountCreate)),
		s.AddAccount,
	)
	app.Delete(Path+"/:orgId/account/:accountId",
		auth.RequireSecondFactor(),
		auth.Require(orgTarget(acl.PermClearerAccountDelete)),
		s.RemoveAccount,
	)
}

// clearerOnly builds a requirement satisfied by clearer permissions alone.
func clearerOnly(perm string) auth.RequirementBuilder {
	return func(*fiber.Ctx) (acl.Requirement, acl.Target, error) {
		return acl.Group(perm), acl.Target{}, nil
	}
}

// orgTarget builds a requirement resolved against the organization in the
// path. The first permission forms one group each, so a clearer operator or
// a sufficiently permitted organization member both pass.
func orgTarget(perms ...string) auth.RequirementBuilder {
	return func(c *fiber.Ctx) (acl.Requirement, acl.Target, error) {
		orgID, err := handler.PathID(c, "orgId")
		if err != nil {
			return nil, acl.Target{}, err
		}

		var required acl.Requirement
		for _, perm := range perms {
			required = required.Or(perm)
		}

		return required, acl.Target{OrganizationID: orgID}, nil
	}
}

type createRequest struct {
	Name            string  `json:"name" validate:"required,max=255"`
	Street          string  `json:"street" validate:"max=255"`
	City            string  `json:"city" validate:"max=255"`
	Country         string  `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	CommissionRatio float64 `json:"commissionRatio" validate:"gte=0,lte=1"`
}

type updateRequest struct {
	Name            *string  `json:"name" validate:"omitempty,max=255"`
	Street          *string  `json:"street" validate:"omitempty,max=255"`
	City            *string  `json:"city" validate:"omitempty,max=255"`
	Country         *string  `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	CommissionRatio *float64 `json:"commissionRatio" validate:"omitempty,gte=0,lte=1"`
}

type accountRequest struct {
	Currency  string `json:"currency" validate:"required,iso4217"`
	AccountID string `json:"accountId" validate:"required,max=24"`
}

type accountView struct {
	Currency  string `json:"currency"`
	AccountID string `json:"accountId"`
}

type view struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Street          string        `json:"street,omitempty"`
	City            string        `json:"city,omitempty"`
	Country         string        `json:"country,omitempty"`
	CommissionRatio float64       `json:"commissionRatio"`
	Accounts        []accountView `json:"clearingAccounts,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

func toView(org *models.Organization) view {
	v := view{
		ID:              org.ID,
		Name:            org.Name,
		Street:          org.Street,
		City:            org.City,
		Country:         org.Country,
		CommissionRatio: org.CommissionRatio,
		CreatedAt:       org.CreatedAt,
	}

	for _, account := range org.ClearingAccounts {
		v.Accounts = append(v.Accounts, accountView{Currency: account.Currency, AccountID: account.AccountID})
	}

	return v
}

// Create handles organization creation. The organization's default role is
// created and granted to the caller in the same transaction.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err)
	}

	created, err := controller.Create(s.db, controller.CreateParams{
		Name:            req.Name,
		Street:          req.Street,
		City:            req.City,
		Country:         req.Country,
		CommissionRatio: req.CommissionRatio,
	}, auth.CurrentUser(c))
	if err != nil {
		return s.fail(c, err, "failed to create organization")
	}

	return c.Status(fiber.StatusCreated).JSON(toView(created))
}

// Get handles a single organization read.
func (s *Service) Get(c *fiber.Ctx) error {
	found, err := controller.GetByID(s.db, c.Params("orgId"))
	if err != nil {
		return s.fail(c, err, "failed to load organization")
	}

	return c.JSON(toView(found))
}

// Update handles organization updates.
func (s *Service) Update(c *fiber.Ctx) error {
	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err)
	}

	target, err := controller.GetByID(s.db, c.Params("orgId"))
	if err != nil {
		return s.fail(c, err, "failed to load organization")
	}

	err = controller.Update(s.db, target, controller.UpdateParams{
		Name:            req.Name,
		Street:          req.Street,
		City:            req.City,
		Country:         req.Country,
		CommissionRatio: req.CommissionRatio,
	})
	if err != nil {
		return s.fail(c, err, "failed to update organization")
	}

	return c.JSON(toView(target))
}

// List handles the paged organization listing.
func (s *Service) List(c *fiber.Ctx) error {
	page, err := controller.List(s.db, handler.ListRequest(c))
	if err != nil {
		return s.fail(c, err, "failed to list organizations")
	}

	items := make([]view, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toView(&page.Items[i]))
	}

	return c.JSON(handler.PageResponse{Items: items, TotalCount: page.TotalCount})
}

// ListAccounts handles the clearing account listing of one organization.
func (s *Service) ListAccounts(c *fiber.Ctx) error {
	found, err := controller.GetByID(s.db, c.Params("orgId"))
	if err != nil {
		return s.fail(c, err, "failed to load organization")
	}

	accounts := make([]accountView, 0, len(found.ClearingAccounts))
	for _, account := range found.ClearingAccounts {
		accounts = append(accounts, accountView{Currency: account.Currency, AccountID: account.AccountID})
	}

	return c.JSON(accounts)
}

// AddAccount handles linking a clearing account to an organization.
func (s *Service) AddAccount(c *fiber.Ctx) error {
	req := new(accountRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, err)
	}

	account, err := controller.AddAccount(s.db, c.Params("orgId"), req.Currency, req.AccountID)
	if err != nil {
		return s.fail(c, err, "failed to add clearing account")
	}

	return c.Status(fiber.StatusCreated).JSON(accountView{Currency: account.Currency, AccountID: account.AccountID})
}

// RemoveAccount handles unlinking a clearing account.
func (s *Service) RemoveAccount(c *fiber.Ctx) error {
	err := controller.RemoveAccount(s.db, c.Params("orgId"), c.Params("accountId"))
	if err != nil {
		return s.fail(c, err, "failed to remove clearing account")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// fail translates controller errors to API responses.
func (s *Service) fail(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, controller.ErrOrganizationNotFound),
		errors.Is(err, controller.ErrAccountNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, controller.ErrNameEmpty):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Error().Err(err).Msg(logMsg)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
