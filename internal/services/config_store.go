package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/adminkit/flexlist-backend/internal/flexlist"
	"github.com/adminkit/flexlist-backend/internal/logger"
	"github.com/adminkit/flexlist-backend/internal/repos"
	"github.com/adminkit/flexlist-backend/internal/types"
)

// ConfigStore owns reads and writes of the per-user layout document.
type ConfigStore interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*types.LayoutConfig, error)
	Entries(cfg *types.LayoutConfig, path []string) []flexlist.Entry
	Update(ctx context.Context, cfg *types.LayoutConfig, patch map[string]any) (*types.LayoutConfig, error)
}

type configStore struct {
	log  *logger.Logger
	repo repos.LayoutConfigRepo
}

func NewConfigStore(baseLog *logger.Logger, repo repos.LayoutConfigRepo) ConfigStore {
	return &configStore{log: baseLog.With("service", "ConfigStore"), repo: repo}
}

func (cs *configStore) GetOrCreate(ctx context.Context, userID uuid.UUID) (*types.LayoutConfig, error) {
	cfg, err := cs.repo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("get or create layout config: %w", err)
	}
	return cfg, nil
}

// Entries reads the entry list stored at path. A document that fails to
// decode, or whose shape diverges from the expected tree at any point,
// reads as empty — user data must never break a page render.
func (cs *configStore) Entries(cfg *types.LayoutConfig, path []string) []flexlist.Entry {
	return flexlist.EntriesAtPath(cs.document(cfg), path)
}

// Update deep-merges patch into the document and persists only the config
// column. The updated row is returned so callers can re-read without
// another query.
func (cs *configStore) Update(ctx context.Context, cfg *types.LayoutConfig, patch map[string]any) (*types.LayoutConfig, error) {
	doc := cs.document(cfg)
	flexlist.DeepUpdate(doc, patch)

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode layout config: %w", err)
	}
	if err := cs.repo.UpdateConfig(ctx, nil, cfg.ID, datatypes.JSON(raw)); err != nil {
		return nil, fmt.Errorf("persist layout config: %w", err)
	}
	cfg.Config = datatypes.JSON(raw)
	return cfg, nil
}

func (cs *configStore) document(cfg *types.LayoutConfig) map[string]any {
	if cfg == nil || len(cfg.Config) == 0 {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(cfg.Config, &doc); err != nil || doc == nil {
		cs.log.Warn("Layout config is not a JSON object, treating as empty", "config_id", cfg.ID)
		return map[string]any{}
	}
	return doc
}
