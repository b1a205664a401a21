package members

import "context"

type Repository interface {
	ListMembers(ctx context.Context) ([]Member, error)
	GetMember(ctx context.Context, id int64) (*Member, error)
	CreateMember(ctx context.Context, member *Member) error
	UpdateMember(ctx context.Context, member *Member) error
	DeleteMember(ctx context.Context, id int64) (bool, error)
}
