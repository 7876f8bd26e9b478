package memory

import (
	"context"
	"fmt"

	"petclinic/internal/domain/entity"
	"petclinic/internal/domain/visits"
)

type VisitRepo struct {
	s *Store
}

var _ visits.Repository = (*VisitRepo)(nil)

func (r *VisitRepo) Create(ctx context.Context, v *visits.Visit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[v.PetID]; !ok {
		return fmt.Errorf("memory: create visit: unknown pet %d", v.PetID)
	}
	r.s.insertVisit(v)
	return nil
}

func (r *VisitRepo) GetByID(ctx context.Context, id int64) (*visits.Visit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.visits[id]
	if !ok {
		return nil, nil
	}
	v := rowToVisit(row)
	return &v, nil
}

func (r *VisitRepo) ListByPet(ctx context.Context, petID int64) ([]visits.Visit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.visitsOf(petID), nil
}

func (r *VisitRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.visits[id]; !ok {
		return false, nil
	}
	delete(r.s.visits, id)
	return true, nil
}

func (s *Store) insertVisit(v *visits.Visit) {
	v.ID = s.next("visits")
	s.visits[v.ID] = visitRow{
		id:          v.ID,
		petID:       v.PetID,
		date:        v.Date,
		description: v.Description,
	}
}

func rowToVisit(row visitRow) visits.Visit {
	return visits.Visit{
		BaseEntity:  entity.BaseEntity{ID: row.id},
		Date:        row.date,
		Description: row.description,
		PetID:       row.petID,
	}
}
