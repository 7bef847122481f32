package daemon

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/acl"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/objectid"
)

const (
	seedRootEmail    = "root@cleardesk.local"
	seedRootPassword = "changeme"
)

// seed bootstraps the clearer root operator on an empty database: one user
// holding a clearer role with the full clearer catalog. Without it no one
// could create the first organization.
func seed(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("failed to check for seed data")
		return
	}

	if count > 0 {
		return
	}

	root := &models.User{
		ID:       objectid.New(),
		Email:    seedRootEmail,
		Password: models.HashPassword(seedRootPassword),
	}

	rootRole := &models.Role{
		ID:          objectid.New(),
		Name:        "Root",
		Scope:       acl.ScopeClearer,
		Permissions: acl.Catalog(acl.ScopeClearer),
		OwnerID:     root.ID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(root).Error; err != nil {
			return err
		}

		if err := tx.Create(rootRole).Error; err != nil {
			return err
		}

		return tx.Create(&models.RoleAssignment{
			UserID:       root.ID,
			RoleID:       rootRole.ID,
			AssignedByID: root.ID,
			AssignedAt:   time.Now(),
		}).Error
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to seed root operator")
		return
	}

	log.Warn().Str("email", seedRootEmail).Msg("seeded root operator with default password, change it")
}
