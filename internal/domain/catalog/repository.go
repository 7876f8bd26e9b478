package catalog

import "context"

// Repository: los métodos de lectura devuelven nil (sin error) si no hay registro.
// Update/Delete devuelven false si el id no existe.
type Repository interface {
	List(ctx context.Context, kind Kind) ([]Item, error)
	GetByID(ctx context.Context, kind Kind, id int64) (*Item, error)
	Create(ctx context.Context, kind Kind, it *Item) error
	Update(ctx context.Context, kind Kind, it Item) (bool, error)
	Delete(ctx context.Context, kind Kind, id int64) (bool, error)
}
