package owners

import "context"

// Repository persiste el agregado completo.
//
// Create inserta owner, mascotas y visitas en una sola transacción y asigna
// los ids generados. Delete borra en cascada visitas -> mascotas -> owner.
// Las lecturas devuelven nil (sin error) si no existe.
type Repository interface {
	Create(ctx context.Context, o *Owner) error
	GetByID(ctx context.Context, id int64) (*Owner, error)
	List(ctx context.Context) ([]Owner, error)
	Update(ctx context.Context, o Owner) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// CreatePet inserta la mascota (p.OwnerID ya asignado) y sus visitas.
	CreatePet(ctx context.Context, p *Pet) error
	GetPet(ctx context.Context, id int64) (*Pet, error)
	UpdatePet(ctx context.Context, p Pet) (bool, error)
	DeletePet(ctx context.Context, id int64) (bool, error)
}
