package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/adminkit/flexlist-backend/internal/logger"
	"github.com/adminkit/flexlist-backend/internal/types"
)

type LayoutConfigRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.LayoutConfig, error)
	UpdateConfig(ctx context.Context, tx *gorm.DB, configID uuid.UUID, config datatypes.JSON) error
}

type layoutConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLayoutConfigRepo(db *gorm.DB, baseLog *logger.Logger) LayoutConfigRepo {
	return &layoutConfigRepo{db: db, log: baseLog.With("repo", "LayoutConfigRepo")}
}

// GetOrCreate fetches the single layout document for a user, creating an
// empty one on first access. Idempotent within a request.
func (lr *layoutConfigRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.LayoutConfig, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.LayoutConfig
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if err == nil {
		return &result, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := types.LayoutConfig{
		ID:     uuid.New(),
		UserID: userID,
		Config: datatypes.JSON([]byte("{}")),
	}
	if err := transaction.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateConfig persists the config column only; no other fields are
// touched.
func (lr *layoutConfigRepo) UpdateConfig(ctx context.Context, tx *gorm.DB, configID uuid.UUID, config datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.LayoutConfig{}).
		Where("id = ?", configID).
		Update("config", config).Error
}
