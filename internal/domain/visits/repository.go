package visits

import "context"

// Repository: GetByID devuelve nil si no existe; Delete devuelve false.
type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id int64) (*Visit, error)
	ListByPet(ctx context.Context, petID int64) ([]Visit, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
