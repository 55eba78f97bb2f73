package setting

import "context"

// Repository defines the interface for system setting persistence
type Repository interface {
	// GetByKey returns ErrSettingNotFound when the key is absent.
	GetByKey(ctx context.Context, key string) (*SystemSetting, error)
	GetAll(ctx context.Context) ([]*SystemSetting, error)
	Upsert(ctx context.Context, setting *SystemSetting) error
}
