package tweet

import (
	"context"

	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, tweet *Tweet) error
	GetByID(context context.Context, id string) (*Tweet, error)
	ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Tweet, int64, error)
	Update(context context.Context, id, content string) error
	Delete(context context.Context, id string) error
}
