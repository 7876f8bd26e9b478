package memory

import (
	"context"

	"petclinic/internal/domain/catalog"
)

type CatalogRepo struct {
	s *Store
}

var _ catalog.Repository = (*CatalogRepo)(nil)

func (r *CatalogRepo) List(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	table := r.s.lookups[kind]
	out := make([]catalog.Item, 0, len(table))
	for id, name := range table {
		out = append(out, catalog.NewItem(id, name))
	}
	catalog.SortByName(out)
	return out, nil
}

func (r *CatalogRepo) GetByID(ctx context.Context, kind catalog.Kind, id int64) (*catalog.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	name, ok := r.s.lookups[kind][id]
	if !ok {
		return nil, nil
	}
	it := catalog.NewItem(id, name)
	return &it, nil
}

func (r *CatalogRepo) Create(ctx context.Context, kind catalog.Kind, it *catalog.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it.ID = r.s.next(string(kind))
	r.s.lookups[kind][it.ID] = it.Name
	return nil
}

func (r *CatalogRepo) Update(ctx context.Context, kind catalog.Kind, it catalog.Item) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.lookups[kind][it.ID]; !ok {
		return false, nil
	}
	r.s.lookups[kind][it.ID] = it.Name
	return true, nil
}

// Delete devuelve catalog.ErrInUse si algún pet o vet lo referencia.
func (r *CatalogRepo) Delete(ctx context.Context, kind catalog.Kind, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.lookups[kind][id]; !ok {
		return false, nil
	}
	if r.s.referenced(kind, id) {
		return false, catalog.ErrInUse
	}
	delete(r.s.lookups[kind], id)
	return true, nil
}

func (s *Store) referenced(kind catalog.Kind, id int64) bool {
	switch kind {
	case catalog.KindPetType:
		for _, p := range s.pets {
			if p.typeID == id {
				return true
			}
		}
	case catalog.KindSpecialty:
		for _, set := range s.vetSpecialties {
			if _, ok := set[id]; ok {
				return true
			}
		}
	}
	return false
}
