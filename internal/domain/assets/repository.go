package assets

import "context"

type Repository interface {
	ListAssets(ctx context.Context) ([]Asset, error)
	GetAsset(ctx context.Context, id int64) (*Asset, error)
	CreateAsset(ctx context.Context, asset *Asset) error
	UpdateAsset(ctx context.Context, asset *Asset) error
	DeleteAsset(ctx context.Context, id int64) (bool, error)
}
