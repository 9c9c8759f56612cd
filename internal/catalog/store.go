package catalog

import (
	"context"
	"errors"
)

var ErrDuplicateID = errors.New("id already exists")

type Store interface {
	Ping(ctx context.Context) error

	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, bool, error)
	CreateProduct(ctx context.Context, p Product) error
	UpdateProduct(ctx context.Context, p Product) (bool, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)

	ListContent(ctx context.Context, kind string) ([]Content, error)
	CreateContent(ctx context.Context, c Content) error
	UpdateContent(ctx context.Context, c Content) (bool, error)
	DeleteContent(ctx context.Context, id string) (bool, error)
}
