package catalog

import "context"

type Store interface {
	Ping(ctx context.Context) error
	All(ctx context.Context) ([]Garment, error)
	Append(ctx context.Context, g Garment) error
	Len() int
}
