package services

import (
	"strings"

	"github.com/adminkit/flexlist-backend/internal/adminsite"
	"github.com/adminkit/flexlist-backend/internal/flexlist"
)

// Document paths. The layout document is addressed by fixed key sequences;
// app labels and model names are lowercased so the path is stable however
// the caller spells them.

func appListPath() []string {
	return []string{"app_list"}
}

func modelListPath(appLabel string) []string {
	return []string{"apps", strings.ToLower(appLabel), "model_list"}
}

func listDisplayPath(appLabel, modelName string) []string {
	return []string{"apps", strings.ToLower(appLabel), "models", strings.ToLower(modelName), "list_display"}
}

func itemsFromColumns(columns []adminsite.Column) []flexlist.Item {
	items := make([]flexlist.Item, 0, len(columns))
	for _, c := range columns {
		items = append(items, flexlist.Item{Name: c.Name, Description: c.Description})
	}
	return items
}

func itemsFromApps(apps []adminsite.AppInfo) []flexlist.Item {
	items := make([]flexlist.Item, 0, len(apps))
	for _, a := range apps {
		items = append(items, flexlist.Item{Name: a.Label, Description: a.Name})
	}
	return items
}

func itemsFromModels(models []adminsite.ModelInfo) []flexlist.Item {
	items := make([]flexlist.Item, 0, len(models))
	for _, m := range models {
		items = append(items, flexlist.Item{Name: m.ObjectName, Description: m.DisplayName})
	}
	return items
}
