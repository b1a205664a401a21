package settings

import "context"

type Repository interface {
	ListSettings(ctx context.Context) ([]Setting, error)
	GetSetting(ctx context.Context, key string) (*Setting, error)
	UpsertSetting(ctx context.Context, setting *Setting) error
	DeleteSetting(ctx context.Context, key string) (bool, error)
}
