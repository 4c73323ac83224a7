package services

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adminkit/flexlist-backend/internal/adminsite"
	"github.com/adminkit/flexlist-backend/internal/flexlist"
	"github.com/adminkit/flexlist-backend/internal/logger"
	"github.com/adminkit/flexlist-backend/internal/repos"
	"github.com/adminkit/flexlist-backend/internal/requestdata"
	"github.com/adminkit/flexlist-backend/internal/types"
)

type layoutTestEnv struct {
	ctx         context.Context
	db          *gorm.DB
	userID      uuid.UUID
	store       ConfigStore
	repo        repos.LayoutConfigRepo
	listDisplay ListDisplayService
	appList     AppListService
	modelList   ModelListService
}

func newLayoutTestEnv(t *testing.T) *layoutTestEnv {
	t.Helper()

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&types.User{}, &types.LayoutConfig{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	user := types.User{
		ID:       uuid.New(),
		Email:    fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "."))),
		Password: "x",
		IsStaff:  true,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	site := adminsite.NewSite(log)
	if err := site.RegisterApp(adminsite.AppInfo{Label: "blog", Name: "Blog"}); err != nil {
		t.Fatalf("RegisterApp: %v", err)
	}
	if err := site.RegisterModel("blog", adminsite.ModelSpec{
		Name:        "post",
		ObjectName:  "Post",
		DisplayName: "Posts",
		Verbose:     "blog post",
		Fields: []adminsite.Field{
			{Name: "title", Label: "title"},
			{Name: "author", Label: "author"},
		},
	}, adminsite.ModelAdmin{
		ListDisplay: []adminsite.ColumnRef{
			adminsite.Named("title"),
			adminsite.Named("author"),
			adminsite.Computed{Name: "word_count", Label: "word count"},
		},
	}); err != nil {
		t.Fatalf("RegisterModel: %v", err)
	}
	if err := site.RegisterApp(adminsite.AppInfo{Label: "accounts", Name: "Accounts"}); err != nil {
		t.Fatalf("RegisterApp: %v", err)
	}
	if err := site.RegisterModel("accounts", adminsite.ModelSpec{
		Name:        "user",
		ObjectName:  "User",
		DisplayName: "Users",
	}, adminsite.ModelAdmin{
		ListDisplay: []adminsite.ColumnRef{adminsite.Named("email")},
	}); err != nil {
		t.Fatalf("RegisterModel: %v", err)
	}

	repo := repos.NewLayoutConfigRepo(gdb, log)
	store := NewConfigStore(log, repo)

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:  user.ID,
		IsStaff: true,
	})

	return &layoutTestEnv{
		ctx:         ctx,
		db:          gdb,
		userID:      user.ID,
		store:       store,
		repo:        repo,
		listDisplay: NewListDisplayService(log, site, store),
		appList:     NewAppListService(log, site, store),
		modelList:   NewModelListService(log, site, store),
	}
}

func TestGetListFieldsDefaults(t *testing.T) {
	env := newLayoutTestEnv(t)

	fields, err := env.listDisplay.GetListFields(env.ctx, "blog", "post")
	if err != nil {
		t.Fatalf("GetListFields: %v", err)
	}
	want := []flexlist.Entry{
		{Name: "title", Description: "Title", Visible: true},
		{Name: "author", Description: "Author", Visible: true},
		{Name: "word_count", Description: "Word Count", Visible: true},
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("GetListFields=%v, want %v", fields, want)
	}
}

func TestUpdateListFieldsReordersAndHides(t *testing.T) {
	env := newLayoutTestEnv(t)

	data := []any{
		map[string]any{"name": "author", "description": "stale label", "visible": false},
		map[string]any{"name": "title", "description": "Title", "visible": true},
		map[string]any{"name": "removed_field", "description": "X", "visible": true},
		map[string]any{"name": "broken", "visible": true},
	}
	updated, err := env.listDisplay.UpdateListFields(env.ctx, "blog", "post", data)
	if err != nil {
		t.Fatalf("UpdateListFields: %v", err)
	}
	want := []flexlist.Entry{
		{Name: "author", Description: "Author", Visible: false},
		{Name: "title", Description: "Title", Visible: true},
		{Name: "word_count", Description: "Word Count", Visible: true},
	}
	if !reflect.DeepEqual(updated, want) {
		t.Fatalf("UpdateListFields=%v, want %v", updated, want)
	}

	// A fresh read returns the same reconciled list.
	fields, err := env.listDisplay.GetListFields(env.ctx, "blog", "post")
	if err != nil {
		t.Fatalf("GetListFields: %v", err)
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("GetListFields after update=%v, want %v", fields, want)
	}

	visible, err := env.listDisplay.VisibleColumns(env.ctx, "blog", "post")
	if err != nil {
		t.Fatalf("VisibleColumns: %v", err)
	}
	if !reflect.DeepEqual(visible, []string{"title", "word_count"}) {
		t.Fatalf("VisibleColumns=%v", visible)
	}
}

func TestUpdateListFieldsUnknownModel(t *testing.T) {
	env := newLayoutTestEnv(t)

	if _, err := env.listDisplay.GetListFields(env.ctx, "blog", "comment"); err == nil {
		t.Fatalf("expected lookup error for unregistered model")
	}
	if _, err := env.listDisplay.UpdateListFields(env.ctx, "blog", "comment", []any{}); err == nil {
		t.Fatalf("expected lookup error for unregistered model")
	}
}

func TestUnauthenticatedShortCircuit(t *testing.T) {
	env := newLayoutTestEnv(t)
	anon := context.Background()

	fields, err := env.listDisplay.GetListFields(anon, "blog", "post")
	if err != nil || len(fields) != 0 {
		t.Fatalf("GetListFields anon=%v, %v", fields, err)
	}
	apps, err := env.appList.GetAppList(anon)
	if err != nil || len(apps) != 0 {
		t.Fatalf("GetAppList anon=%v, %v", apps, err)
	}
	models, err := env.modelList.GetModelList(anon, "blog")
	if err != nil || len(models) != 0 {
		t.Fatalf("GetModelList anon=%v, %v", models, err)
	}
	if _, err := env.listDisplay.UpdateListFields(anon, "blog", "post", []any{}); err != nil {
		t.Fatalf("UpdateListFields anon: %v", err)
	}

	// The short-circuit happens before any store access: no document row
	// may exist afterwards.
	var count int64
	if err := env.db.Model(&types.LayoutConfig{}).Count(&count).Error; err != nil {
		t.Fatalf("count configs: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no layout config rows, got %d", count)
	}
}

func TestUpdateModelListLeavesSiblingsUntouched(t *testing.T) {
	env := newLayoutTestEnv(t)

	appData := []any{
		map[string]any{"name": "accounts", "description": "Accounts", "visible": false},
		map[string]any{"name": "blog", "description": "Blog", "visible": true},
	}
	if _, err := env.appList.UpdateAppList(env.ctx, appData); err != nil {
		t.Fatalf("UpdateAppList: %v", err)
	}

	modelData := []any{
		map[string]any{"name": "Post", "description": "Posts", "visible": false},
	}
	if _, err := env.modelList.UpdateModelList(env.ctx, "blog", modelData); err != nil {
		t.Fatalf("UpdateModelList: %v", err)
	}

	apps, err := env.appList.GetAppList(env.ctx)
	if err != nil {
		t.Fatalf("GetAppList: %v", err)
	}
	want := []flexlist.Entry{
		{Name: "accounts", Description: "Accounts", Visible: false},
		{Name: "blog", Description: "Blog", Visible: true},
	}
	if !reflect.DeepEqual(apps, want) {
		t.Fatalf("app list disturbed by model list update: %v", apps)
	}
}

func TestGetModelListUnknownAppReadsEmpty(t *testing.T) {
	env := newLayoutTestEnv(t)

	models, err := env.modelList.GetModelList(env.ctx, "shop")
	if err != nil {
		t.Fatalf("GetModelList: %v", err)
	}
	if len(models) != 0 {
		t.Fatalf("expected empty list for unknown app, got %v", models)
	}
}

func TestAppIndexFiltersHiddenEntries(t *testing.T) {
	env := newLayoutTestEnv(t)

	if _, err := env.appList.UpdateAppList(env.ctx, []any{
		map[string]any{"name": "accounts", "description": "Accounts", "visible": true},
		map[string]any{"name": "blog", "description": "Blog", "visible": false},
	}); err != nil {
		t.Fatalf("UpdateAppList: %v", err)
	}

	index, err := env.appList.AppIndex(env.ctx)
	if err != nil {
		t.Fatalf("AppIndex: %v", err)
	}
	if len(index) != 1 || index[0].Label != "accounts" {
		t.Fatalf("AppIndex=%v, want only accounts", index)
	}
	if len(index[0].Models) != 1 || index[0].Models[0].ObjectName != "User" {
		t.Fatalf("AppIndex models=%v", index[0].Models)
	}
}

func TestCorruptedConfigReadsAsEmpty(t *testing.T) {
	env := newLayoutTestEnv(t)

	cfg, err := env.store.GetOrCreate(env.ctx, env.userID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	// Valid JSON, wrong shape: the whole document must read as empty.
	if err := env.repo.UpdateConfig(env.ctx, nil, cfg.ID, datatypes.JSON([]byte(`[1,2,3]`))); err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}

	fields, err := env.listDisplay.GetListFields(env.ctx, "blog", "post")
	if err != nil {
		t.Fatalf("GetListFields: %v", err)
	}
	want := []flexlist.Entry{
		{Name: "title", Description: "Title", Visible: true},
		{Name: "author", Description: "Author", Visible: true},
		{Name: "word_count", Description: "Word Count", Visible: true},
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("corrupted config should fall back to defaults, got %v", fields)
	}
}
