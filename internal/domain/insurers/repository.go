package insurers

import "context"

type Repository interface {
	ListInsurers(ctx context.Context) ([]Insurer, error)
	GetInsurer(ctx context.Context, id int64) (*Insurer, error)
	CountInsurersByName(ctx context.Context, name string, excludeID int64) (int64, error)
	CreateInsurer(ctx context.Context, insurer *Insurer) error
	UpdateInsurer(ctx context.Context, insurer *Insurer) error
	DeleteInsurer(ctx context.Context, id int64) (bool, error)
}
