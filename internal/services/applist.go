package services

import (
	"context"

	"github.com/adminkit/flexlist-backend/internal/adminsite"
	"github.com/adminkit/flexlist-backend/internal/flexlist"
	"github.com/adminkit/flexlist-backend/internal/logger"
	"github.com/adminkit/flexlist-backend/internal/requestdata"
	"github.com/adminkit/flexlist-backend/internal/types"
)

// AppIndexEntry is one application in the composite admin index: the
// reconciled app list with each app's reconciled model list nested, both
// filtered down to visible entries. This is what the console front page
// renders.
type AppIndexEntry struct {
	Label  string            `json:"app_label"`
	Name   string            `json:"name"`
	Models []ModelIndexEntry `json:"models"`
}

type ModelIndexEntry struct {
	ObjectName string `json:"object_name"`
	Name       string `json:"name"`
}

// AppListService binds the reconciler to the admin's application list.
// The storage path is the single global app_list key.
type AppListService interface {
	GetAppList(ctx context.Context) ([]flexlist.Entry, error)
	UpdateAppList(ctx context.Context, data any) ([]flexlist.Entry, error)
	AppIndex(ctx context.Context) ([]AppIndexEntry, error)
}

type appListService struct {
	log   *logger.Logger
	site  *adminsite.Site
	store ConfigStore
}

func NewAppListService(baseLog *logger.Logger, site *adminsite.Site, store ConfigStore) AppListService {
	return &appListService{
		log:   baseLog.With("service", "AppListService"),
		site:  site,
		store: store,
	}
}

func (as *appListService) GetAppList(ctx context.Context) ([]flexlist.Entry, error) {
	if !requestdata.Authenticated(ctx) {
		return []flexlist.Entry{}, nil
	}
	rd := requestdata.GetRequestData(ctx)
	cfg, err := as.store.GetOrCreate(ctx, rd.UserID)
	if err != nil {
		return nil, err
	}
	return as.reconciled(cfg), nil
}

func (as *appListService) UpdateAppList(ctx context.Context, data any) ([]flexlist.Entry, error) {
	if !requestdata.Authenticated(ctx) {
		return []flexlist.Entry{}, nil
	}
	rd := requestdata.GetRequestData(ctx)
	cfg, err := as.store.GetOrCreate(ctx, rd.UserID)
	if err != nil {
		return nil, err
	}

	entries := flexlist.EntriesFromValue(data)
	payload := flexlist.UpdatePayload(entries, appListPath())
	cfg, err = as.store.Update(ctx, cfg, payload)
	if err != nil {
		return nil, err
	}
	return as.reconciled(cfg), nil
}

// AppIndex assembles the visibility-filtered index from one document read:
// reconciled apps in the user's order with hidden apps removed, and inside
// each app the reconciled model list with hidden models removed.
func (as *appListService) AppIndex(ctx context.Context) ([]AppIndexEntry, error) {
	if !requestdata.Authenticated(ctx) {
		return []AppIndexEntry{}, nil
	}
	rd := requestdata.GetRequestData(ctx)
	cfg, err := as.store.GetOrCreate(ctx, rd.UserID)
	if err != nil {
		return nil, err
	}

	index := make([]AppIndexEntry, 0)
	for _, app := range as.reconciled(cfg) {
		if !app.Visible {
			continue
		}
		models, err := as.site.AppModels(app.Name)
		if err != nil {
			return nil, err
		}
		stored := as.store.Entries(cfg, modelListPath(app.Name))
		merged := flexlist.Reconcile(itemsFromModels(models), stored)

		modelEntries := make([]ModelIndexEntry, 0, len(merged))
		for _, m := range merged {
			if !m.Visible {
				continue
			}
			modelEntries = append(modelEntries, ModelIndexEntry{
				ObjectName: m.Name,
				Name:       m.Description,
			})
		}
		index = append(index, AppIndexEntry{
			Label:  app.Name,
			Name:   app.Description,
			Models: modelEntries,
		})
	}
	return index, nil
}

func (as *appListService) reconciled(cfg *types.LayoutConfig) []flexlist.Entry {
	stored := as.store.Entries(cfg, appListPath())
	return flexlist.Reconcile(itemsFromApps(as.site.Apps()), stored)
}
