package refresh

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"github.com/skillsenselab/authcore/database"
	"github.com/skillsenselab/authcore/logger"
	"github.com/skillsenselab/authcore/password"
)

// RefreshToken is the relational record for an issued token. Rows are never
// deleted; revocation flips Active to false and nothing else.
type RefreshToken struct {
	database.BaseModel
	Value     string    `gorm:"uniqueIndex;size:192;not null"`
	SubjectID string    `gorm:"index;size:64;not null"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Active    bool      `gorm:"not null;default:true"`
}

// GormStore is a relational Store implementation.
type GormStore struct {
	db  *database.DB
	ttl time.Duration
	log *logger.Logger
	now func() time.Time
}

// NewGormStore creates a relational refresh-token store and migrates its table.
func NewGormStore(db *database.DB, cfg Config, log *logger.Logger) (*GormStore, error) {
	cfg.ApplyDefaults()
	if err := db.AutoMigrate(&RefreshToken{}); err != nil {
		return nil, err
	}
	return &GormStore{
		db:  db,
		ttl: cfg.TTL,
		log: log.WithComponent("refresh-store"),
		now: time.Now,
	}, nil
}

func (s *GormStore) Issue(ctx context.Context, subjectID string) (*Token, error) {
	value, err := password.GenerateOpaqueToken(TokenBytes)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec := RefreshToken{
		Value:     value,
		SubjectID: subjectID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
		Active:    true,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}

	s.log.Debug("refresh token issued", logger.Fields(logger.FieldSubjectID, subjectID))
	return &Token{
		Value:     rec.Value,
		SubjectID: rec.SubjectID,
		IssuedAt:  rec.IssuedAt,
		ExpiresAt: rec.ExpiresAt,
		Active:    true,
	}, nil
}

func (s *GormStore) Validate(ctx context.Context, subjectID, value string) (bool, error) {
	var rec RefreshToken
	err := s.db.WithContext(ctx).First(&rec, "value = ?", value).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if rec.SubjectID != subjectID || !rec.Active {
		return false, nil
	}
	return s.now().UTC().Before(rec.ExpiresAt), nil
}

func (s *GormStore) Invalidate(ctx context.Context, value string) error {
	// Soft revoke; affects zero rows for an absent value, which keeps the
	// operation idempotent.
	return s.db.WithContext(ctx).
		Model(&RefreshToken{}).
		Where("value = ?", value).
		Update("active", false).Error
}

var _ Store = (*GormStore)(nil)
