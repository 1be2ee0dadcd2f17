package product

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// Filter narrows ListProducts results. Zero values mean "no constraint".
type Filter struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
}

// Storage persists products. Implementations must be safe for concurrent use.
type Storage interface {
	CreateProduct(ctx context.Context, p *Product) error
	ListProducts(ctx context.Context, f Filter) ([]Product, error)
	// GetProduct returns ErrProductNotFound when no record exists.
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	// UpdateProduct returns ErrProductNotFound when no record exists.
	UpdateProduct(ctx context.Context, p *Product) error
	// DeleteProduct returns ErrProductNotFound when no record exists.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
