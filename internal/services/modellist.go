package services

import (
	"context"
	"errors"

	"github.com/adminkit/flexlist-backend/internal/adminsite"
	"github.com/adminkit/flexlist-backend/internal/flexlist"
	"github.com/adminkit/flexlist-backend/internal/logger"
	"github.com/adminkit/flexlist-backend/internal/requestdata"
	"github.com/adminkit/flexlist-backend/internal/types"
)

// ModelListService binds the reconciler to the model list of one app. The
// storage path is apps.<app>.model_list; model identity is the exported
// object name.
type ModelListService interface {
	GetModelList(ctx context.Context, appLabel string) ([]flexlist.Entry, error)
	UpdateModelList(ctx context.Context, appLabel string, data any) ([]flexlist.Entry, error)
}

type modelListService struct {
	log   *logger.Logger
	site  *adminsite.Site
	store ConfigStore
}

func NewModelListService(baseLog *logger.Logger, site *adminsite.Site, store ConfigStore) ModelListService {
	return &modelListService{
		log:   baseLog.With("service", "ModelListService"),
		site:  site,
		store: store,
	}
}

func (ms *modelListService) GetModelList(ctx context.Context, appLabel string) ([]flexlist.Entry, error) {
	if !requestdata.Authenticated(ctx) {
		return []flexlist.Entry{}, nil
	}
	// An unknown app reads as empty rather than failing: the app list is
	// per-user and an app may simply not be served to this caller.
	if !ms.site.HasApp(appLabel) {
		return []flexlist.Entry{}, nil
	}
	rd := requestdata.GetRequestData(ctx)
	cfg, err := ms.store.GetOrCreate(ctx, rd.UserID)
	if err != nil {
		return nil, err
	}
	return ms.reconciled(cfg, appLabel)
}

func (ms *modelListService) UpdateModelList(ctx context.Context, appLabel string, data any) ([]flexlist.Entry, error) {
	if !requestdata.Authenticated(ctx) {
		return []flexlist.Entry{}, nil
	}
	if !ms.site.HasApp(appLabel) {
		return []flexlist.Entry{}, nil
	}
	rd := requestdata.GetRequestData(ctx)
	cfg, err := ms.store.GetOrCreate(ctx, rd.UserID)
	if err != nil {
		return nil, err
	}

	entries := flexlist.EntriesFromValue(data)
	payload := flexlist.UpdatePayload(entries, modelListPath(appLabel))
	cfg, err = ms.store.Update(ctx, cfg, payload)
	if err != nil {
		return nil, err
	}
	return ms.reconciled(cfg, appLabel)
}

func (ms *modelListService) reconciled(cfg *types.LayoutConfig, appLabel string) ([]flexlist.Entry, error) {
	models, err := ms.site.AppModels(appLabel)
	if err != nil {
		if errors.Is(err, adminsite.ErrAppNotRegistered) {
			return []flexlist.Entry{}, nil
		}
		return nil, err
	}
	stored := ms.store.Entries(cfg, modelListPath(appLabel))
	return flexlist.Reconcile(itemsFromModels(models), stored), nil
}
