package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the top-level relational record for a user. Its ID mirrors the
// identity store's user id, so the two stores agree on who owns what.
// Account erasure hard-deletes this row; every dependent table below declares
// ON DELETE CASCADE against it, which is the contract the erasure saga relies
// on instead of enumerating child tables itself.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// Associations: GORM needs Preload() to fill these
	Applications []Application     `gorm:"foreignKey:UserID" json:"applications,omitempty"`
	Research     []CompanyResearch `gorm:"foreignKey:UserID" json:"research,omitempty"`
	CoverLetters []CoverLetter     `gorm:"foreignKey:UserID" json:"cover_letters,omitempty"`
}

// ProviderCredential holds the OAuth tokens for a user's linked provider
// account. At most one row per user: the unique index on UserID is what the
// vault's upsert conflicts against. Token columns are never serialized.
type ProviderCredential struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Profile Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	AccessToken   string    `gorm:"not null" json:"-"`
	RefreshToken  string    `json:"-"`
	ExpiresAt     time.Time `json:"expires_at"`
	ProviderEmail string    `json:"provider_email"`
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Profile Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CompanyName string `gorm:"not null" json:"company_name"`
	RoleTitle   string `gorm:"not null" json:"role_title"`
	JobLink     string `json:"job_link"`
	Status      string `gorm:"default:'APPLIED'" json:"status"`
	Description string `gorm:"type:text" json:"description"`
}

type CompanyResearch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Profile Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CompanyName string `gorm:"not null" json:"company_name"`
	Payload     string `gorm:"type:text" json:"payload"`
}

type CoverLetter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Profile Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	ApplicationID uint   `gorm:"index" json:"application_id"`
	Content       string `gorm:"type:text" json:"content"`
}
