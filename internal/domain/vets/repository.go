package vets

import "context"

// Repository: un registro ausente es (nil, nil), nunca un error.
type Repository interface {
	Create(ctx context.Context, v *Vet) error
	GetByID(ctx context.Context, id int64) (*Vet, error)
	ListAll(ctx context.Context) ([]Vet, error)
	Update(ctx context.Context, v Vet) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// FindByLastName: match exacto (case-sensitive); si hay varios, el de menor id.
	FindByLastName(ctx context.Context, lastName string) (*Vet, error)
}
