package database

import (
	"context"

	"github.com/applymate/applymate-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CredentialRepository persists provider credentials. Concurrency safety for
// the one-row-per-user invariant lives entirely in the ON CONFLICT clause:
// there is no read-then-write anywhere on the write path.
type CredentialRepository struct {
	DB *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{DB: db}
}

// Upsert atomically inserts or fully replaces the credential row for
// cred.UserID, keyed on the unique user_id index.
func (r *CredentialRepository) Upsert(ctx context.Context, cred *models.ProviderCredential) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "refresh_token", "expires_at", "provider_email", "updated_at",
		}),
	}).Create(cred).Error
}

// FindByUser returns gorm.ErrRecordNotFound when the user has no linked
// provider account.
func (r *CredentialRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.ProviderCredential, error) {
	var cred models.ProviderCredential
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

// ProfileRepository owns the top-level user row.
type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// HardDelete removes the profile row for good. Unscoped on purpose: a soft
// delete would leave personal data in place, which defeats account erasure.
// Dependent rows go with it via the schema's ON DELETE CASCADE constraints.
func (r *ProfileRepository) HardDelete(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Unscoped().Where("id = ?", userID).Delete(&models.Profile{}).Error
}
