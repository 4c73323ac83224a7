package services

import (
	"context"

	"github.com/adminkit/flexlist-backend/internal/adminsite"
	"github.com/adminkit/flexlist-backend/internal/flexlist"
	"github.com/adminkit/flexlist-backend/internal/logger"
	"github.com/adminkit/flexlist-backend/internal/requestdata"
	"github.com/adminkit/flexlist-backend/internal/types"
)

// ListDisplayService binds the reconciler to a model's display columns.
// The authoritative source is the model's declared columns from the admin
// registry; user ordering and visibility live under
// apps.<app>.models.<model>.list_display in the layout document.
type ListDisplayService interface {
	GetListFields(ctx context.Context, appLabel, modelName string) ([]flexlist.Entry, error)
	UpdateListFields(ctx context.Context, appLabel, modelName string, data any) ([]flexlist.Entry, error)
	VisibleColumns(ctx context.Context, appLabel, modelName string) ([]string, error)
}

type listDisplayService struct {
	log   *logger.Logger
	site  *adminsite.Site
	store ConfigStore
}

func NewListDisplayService(baseLog *logger.Logger, site *adminsite.Site, store ConfigStore) ListDisplayService {
	return &listDisplayService{
		log:   baseLog.With("service", "ListDisplayService"),
		site:  site,
		store: store,
	}
}

func (ls *listDisplayService) GetListFields(ctx context.Context, appLabel, modelName string) ([]flexlist.Entry, error) {
	if !requestdata.Authenticated(ctx) {
		return []flexlist.Entry{}, nil
	}
	columns, err := ls.site.DeclaredColumns(appLabel, modelName)
	if err != nil {
		return nil, err
	}
	rd := requestdata.GetRequestData(ctx)
	cfg, err := ls.store.GetOrCreate(ctx, rd.UserID)
	if err != nil {
		return nil, err
	}
	return ls.reconciled(cfg, appLabel, modelName, columns), nil
}

// UpdateListFields validates the caller-supplied entries, merges them into
// the document, then re-runs the read path. The response is always the
// freshly reconciled list, never the raw input echoed back — the input may
// reference columns that no longer exist.
func (ls *listDisplayService) UpdateListFields(ctx context.Context, appLabel, modelName string, data any) ([]flexlist.Entry, error) {
	if !requestdata.Authenticated(ctx) {
		return []flexlist.Entry{}, nil
	}
	columns, err := ls.site.DeclaredColumns(appLabel, modelName)
	if err != nil {
		return nil, err
	}
	rd := requestdata.GetRequestData(ctx)
	cfg, err := ls.store.GetOrCreate(ctx, rd.UserID)
	if err != nil {
		return nil, err
	}

	entries := flexlist.EntriesFromValue(data)
	payload := flexlist.UpdatePayload(entries, listDisplayPath(appLabel, modelName))
	cfg, err = ls.store.Update(ctx, cfg, payload)
	if err != nil {
		return nil, err
	}
	return ls.reconciled(cfg, appLabel, modelName, columns), nil
}

// VisibleColumns is what the change-list rendering consumes: just the
// visible column names, in the user's merged order. The registry's
// DeclaredColumns stays pristine, so the two can never recurse into each
// other.
func (ls *listDisplayService) VisibleColumns(ctx context.Context, appLabel, modelName string) ([]string, error) {
	fields, err := ls.GetListFields(ctx, appLabel, modelName)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Visible {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

func (ls *listDisplayService) reconciled(cfg *types.LayoutConfig, appLabel, modelName string, columns []adminsite.Column) []flexlist.Entry {
	stored := ls.store.Entries(cfg, listDisplayPath(appLabel, modelName))
	return flexlist.Reconcile(itemsFromColumns(columns), stored)
}
