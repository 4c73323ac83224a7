package db

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/adminkit/flexlist-backend/internal/logger"
	"github.com/adminkit/flexlist-backend/internal/types"
)

// The schema must migrate cleanly on SQLite, so the model tags cannot use
// Postgres-only default expressions such as uuid_generate_v4() or now().
func TestAutoMigrateAllOnSQLite(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "flexlist.db"))

	svc, err := New(log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}

	user := types.User{
		ID:       uuid.New(),
		Email:    "migrate@example.com",
		Password: "x",
	}
	if err := svc.DB().Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	cfg := types.LayoutConfig{
		ID:     uuid.New(),
		UserID: user.ID,
		Config: []byte(`{}`),
	}
	if err := svc.DB().Create(&cfg).Error; err != nil {
		t.Fatalf("create layout config: %v", err)
	}
	tok := types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  "access",
		RefreshToken: "refresh",
	}
	if err := svc.DB().Create(&tok).Error; err != nil {
		t.Fatalf("create user token: %v", err)
	}
}
