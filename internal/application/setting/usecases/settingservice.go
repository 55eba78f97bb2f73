package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"cardly/internal/domain/setting"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
)

// Definition declares a known setting and the value used until an admin stores one.
type Definition struct {
	Key         string
	ValueType   setting.ValueType
	Default     string
	Description string
}

var definitions = []Definition{
	{setting.KeyProtectViewedOnDelete, setting.ValueTypeBool, "true", "Bulk delete skips cards that already have activation events"},
	{setting.KeyCodeSoldMailEnabled, setting.ValueTypeBool, "true", "Send a mail to the customer after an activation code is sold"},
	{setting.KeyRecentEventsLimit, setting.ValueTypeInt, "10", "Number of recent events shown in card analytics"},
	{setting.KeyDefaultCodeAmount, setting.ValueTypeInt, "0", "Amount used when seeding codes without an explicit price"},
}

func lookupDefinition(key string) (Definition, bool) {
	for _, d := range definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// SettingService serves runtime settings from an in-memory copy of system_settings.
// The copy is loaded lazily and dropped on every write.
type SettingService struct {
	repo   setting.Repository
	logger logger.Interface

	mu     sync.RWMutex
	cache  map[string]*setting.SystemSetting
	loaded bool
}

func NewSettingService(repo setting.Repository, logger logger.Interface) *SettingService {
	return &SettingService{
		repo:   repo,
		logger: logger,
	}
}

func (s *SettingService) snapshot(ctx context.Context) (map[string]*setting.SystemSetting, error) {
	s.mu.RLock()
	if s.loaded {
		cache := s.cache
		s.mu.RUnlock()
		return cache, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cache, nil
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	cache := make(map[string]*setting.SystemSetting, len(all))
	for _, st := range all {
		cache[st.Key()] = st
	}
	s.cache = cache
	s.loaded = true
	return cache, nil
}

// Invalidate drops the cached copy; the next read reloads from the repository.
func (s *SettingService) Invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.loaded = false
	s.mu.Unlock()
}

// raw returns the stored value, or the declared default when absent or unreadable.
func (s *SettingService) raw(ctx context.Context, key string) string {
	def, _ := lookupDefinition(key)
	cache, err := s.snapshot(ctx)
	if err != nil {
		s.logger.Warnw("settings unavailable, using default", "key", key, "error", err)
		return def.Default
	}
	if st, ok := cache[key]; ok {
		return st.Value()
	}
	return def.Default
}

func (s *SettingService) GetString(ctx context.Context, key string) string {
	return s.raw(ctx, key)
}

func (s *SettingService) GetInt(ctx context.Context, key string) int {
	v := s.raw(ctx, key)
	n, err := strconv.Atoi(v)
	if err != nil {
		def, _ := lookupDefinition(key)
		s.logger.Warnw("setting is not an int, using default", "key", key, "value", v)
		n, _ = strconv.Atoi(def.Default)
	}
	return n
}

func (s *SettingService) GetBool(ctx context.Context, key string) bool {
	v := s.raw(ctx, key)
	b, err := strconv.ParseBool(v)
	if err != nil {
		def, _ := lookupDefinition(key)
		s.logger.Warnw("setting is not a bool, using default", "key", key, "value", v)
		b, _ = strconv.ParseBool(def.Default)
	}
	return b
}

// SettingView pairs a setting with whether it still carries its default.
type SettingView struct {
	Setting   *setting.SystemSetting
	IsDefault bool
}

// List returns every known setting, substituting defaults for keys never stored.
func (s *SettingService) List(ctx context.Context) ([]SettingView, error) {
	cache, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]SettingView, 0, len(definitions))
	for _, d := range definitions {
		if st, ok := cache[d.Key]; ok {
			views = append(views, SettingView{Setting: st})
			continue
		}
		st, err := setting.NewSystemSetting(d.Key, d.ValueType, d.Default, d.Description)
		if err != nil {
			return nil, err
		}
		views = append(views, SettingView{Setting: st, IsDefault: true})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Setting.Key() < views[j].Setting.Key() })
	return views, nil
}

// Set stores value for a known key and invalidates the cache.
func (s *SettingService) Set(ctx context.Context, key, value string, updatedBy uint) (*setting.SystemSetting, error) {
	def, ok := lookupDefinition(key)
	if !ok {
		return nil, errors.NewValidationError("unknown setting", key)
	}

	st, err := s.repo.GetByKey(ctx, key)
	switch {
	case stderrors.Is(err, setting.ErrSettingNotFound):
		st, err = setting.NewSystemSetting(def.Key, def.ValueType, def.Default, def.Description)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	if err := st.SetValue(value, updatedBy); err != nil {
		if stderrors.Is(err, setting.ErrInvalidValueType) {
			return nil, errors.NewValidationError("invalid setting value", err.Error())
		}
		return nil, err
	}

	if err := s.repo.Upsert(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}
	s.Invalidate()

	s.logger.Infow("setting updated", "key", key, "value", value, "updated_by", updatedBy)
	return st, nil
}
