package adminsite

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/adminkit/flexlist-backend/internal/logger"
)

var (
	ErrAppNotRegistered   = errors.New("app not registered")
	ErrModelNotRegistered = errors.New("no admin registered for model")
)

// ColumnRef is a display-column reference declared at registration time.
// It is either a plain field name or a computed column carrying its own
// label. Refs are resolved into (name, description) pairs once, when the
// model is registered.
type ColumnRef interface {
	columnRef()
}

// Named references a model field (or the special "__str__" object header)
// by name.
type Named string

// Computed is a derived column that does not map to a model field.
type Computed struct {
	Name  string
	Label string
}

func (Named) columnRef()    {}
func (Computed) columnRef() {}

// Field describes one model field known to the registry.
type Field struct {
	Name  string
	Label string
}

// ModelSpec is the registration-time description of a model.
type ModelSpec struct {
	Name        string // lookup key, e.g. "post"
	ObjectName  string // exported name, e.g. "Post"
	DisplayName string // human name used in listings, e.g. "Posts"
	Verbose     string // singular verbose name backing "__str__"
	Fields      []Field
}

// ModelAdmin carries the admin options for one registered model.
type ModelAdmin struct {
	ListDisplay []ColumnRef
}

// Column is a resolved display column.
type Column struct {
	Name        string
	Description string
}

// AppInfo identifies one registered application.
type AppInfo struct {
	Label string
	Name  string
}

// ModelInfo identifies one registered model inside an app listing.
type ModelInfo struct {
	ObjectName  string
	DisplayName string
}

type registeredModel struct {
	spec    ModelSpec
	columns []Column
}

type registeredApp struct {
	info   AppInfo
	models []*registeredModel
	byName map[string]*registeredModel
}

// Site is the live admin registry: the ordered set of apps, their models,
// and each model's declared display columns. It is populated at boot and
// read on every request; it is the authoritative source the layout
// preferences are reconciled against, and it is never persisted.
type Site struct {
	mu    sync.RWMutex
	log   *logger.Logger
	apps  []*registeredApp
	byApp map[string]*registeredApp
}

func NewSite(baseLog *logger.Logger) *Site {
	return &Site{
		log:   baseLog.With("component", "AdminSite"),
		byApp: map[string]*registeredApp{},
	}
}

// RegisterApp adds an application. Registration order is the authoritative
// app order.
func (s *Site) RegisterApp(info AppInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	label := strings.ToLower(info.Label)
	if label == "" {
		return fmt.Errorf("app label required")
	}
	if _, ok := s.byApp[label]; ok {
		return fmt.Errorf("app %q already registered", label)
	}
	info.Label = label
	app := &registeredApp{info: info, byName: map[string]*registeredModel{}}
	s.apps = append(s.apps, app)
	s.byApp[label] = app
	s.log.Debug("Registered app", "app", label)
	return nil
}

// RegisterModel adds a model under an app and resolves its declared display
// columns. Registration order is the authoritative model order within the
// app, and the declared column order is the authoritative column order.
func (s *Site) RegisterModel(appLabel string, spec ModelSpec, admin ModelAdmin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.byApp[strings.ToLower(appLabel)]
	if !ok {
		return fmt.Errorf("register model %q: %w: %s", spec.Name, ErrAppNotRegistered, appLabel)
	}
	name := strings.ToLower(spec.Name)
	if name == "" {
		return fmt.Errorf("model name required")
	}
	if _, ok := app.byName[name]; ok {
		return fmt.Errorf("model %q already registered in app %q", name, app.info.Label)
	}
	spec.Name = name

	columns := make([]Column, 0, len(admin.ListDisplay))
	for _, ref := range admin.ListDisplay {
		columns = append(columns, resolveColumn(ref, spec))
	}

	model := &registeredModel{spec: spec, columns: columns}
	app.models = append(app.models, model)
	app.byName[name] = model
	s.log.Debug("Registered model", "app", app.info.Label, "model", name, "columns", len(columns))
	return nil
}

// DeclaredColumns returns the registration-time display columns for a
// model, untouched by any user preference. The layout services use this as
// the authoritative column list; the effective, preference-aware list comes
// from the list-display service instead, so the two never call each other.
func (s *Site) DeclaredColumns(appLabel, modelName string) ([]Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	model, err := s.lookupModel(appLabel, modelName)
	if err != nil {
		return nil, err
	}
	columns := make([]Column, len(model.columns))
	copy(columns, model.columns)
	return columns, nil
}

// Apps returns the registered applications in registration order.
func (s *Site) Apps() []AppInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]AppInfo, 0, len(s.apps))
	for _, app := range s.apps {
		infos = append(infos, app.info)
	}
	return infos
}

// AppModels returns the models of one app in registration order.
func (s *Site) AppModels(appLabel string) ([]ModelInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.byApp[strings.ToLower(appLabel)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAppNotRegistered, appLabel)
	}
	models := make([]ModelInfo, 0, len(app.models))
	for _, m := range app.models {
		models = append(models, ModelInfo{
			ObjectName:  m.spec.ObjectName,
			DisplayName: m.spec.DisplayName,
		})
	}
	return models, nil
}

// HasApp reports whether an app label is registered.
func (s *Site) HasApp(appLabel string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byApp[strings.ToLower(appLabel)]
	return ok
}

func (s *Site) lookupModel(appLabel, modelName string) (*registeredModel, error) {
	app, ok := s.byApp[strings.ToLower(appLabel)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAppNotRegistered, appLabel)
	}
	model, ok := app.byName[strings.ToLower(modelName)]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrModelNotRegistered, app.info.Label, modelName)
	}
	return model, nil
}
