package usecases

import "context"

type SettingReader interface {
	GetInt(ctx context.Context, key string) int
}
