package services

import (
	"context"

	"github.com/applymate/applymate-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationService reads the caller's job applications. Writes happen
// client-side through the data platform; this read path exists for the
// dashboard summary.
type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

func (s *ApplicationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}
