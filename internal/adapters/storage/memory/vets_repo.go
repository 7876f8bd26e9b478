package memory

import (
	"context"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/entity"
	"petclinic/internal/domain/vets"
)

type VetRepo struct {
	s *Store
}

var _ vets.Repository = (*VetRepo)(nil)

func (r *VetRepo) Create(ctx context.Context, v *vets.Vet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v.ID = r.s.next("vets")
	r.s.vets[v.ID] = vetRow{id: v.ID, firstName: v.FirstName, lastName: v.LastName}
	for _, sid := range v.SpecialtyIDs() {
		r.s.linkSpecialty(v.ID, sid)
	}
	return nil
}

func (r *VetRepo) GetByID(ctx context.Context, id int64) (*vets.Vet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.vets[id]
	if !ok {
		return nil, nil
	}
	v := r.s.hydrateVet(row)
	return &v, nil
}

func (r *VetRepo) ListAll(ctx context.Context) ([]vets.Vet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vets.Vet, 0, len(r.s.vets))
	for _, id := range sortedIDs(r.s.vets) {
		out = append(out, r.s.hydrateVet(r.s.vets[id]))
	}
	return out, nil
}

func (r *VetRepo) Update(ctx context.Context, v vets.Vet) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vets[v.ID]; !ok {
		return false, nil
	}
	r.s.vets[v.ID] = vetRow{id: v.ID, firstName: v.FirstName, lastName: v.LastName}
	delete(r.s.vetSpecialties, v.ID)
	for _, sid := range v.SpecialtyIDs() {
		r.s.linkSpecialty(v.ID, sid)
	}
	return true, nil
}

func (r *VetRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vets[id]; !ok {
		return false, nil
	}
	delete(r.s.vetSpecialties, id)
	delete(r.s.vets, id)
	return true, nil
}

// FindByLastName: match exacto; con apellidos repetidos gana el id menor.
func (r *VetRepo) FindByLastName(ctx context.Context, lastName string) (*vets.Vet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range sortedIDs(r.s.vets) {
		row := r.s.vets[id]
		if row.lastName == lastName {
			v := r.s.hydrateVet(row)
			return &v, nil
		}
	}
	return nil, nil
}

func (s *Store) linkSpecialty(vetID, specialtyID int64) {
	set, ok := s.vetSpecialties[vetID]
	if !ok {
		set = map[int64]struct{}{}
		s.vetSpecialties[vetID] = set
	}
	set[specialtyID] = struct{}{}
}

func (s *Store) hydrateVet(row vetRow) vets.Vet {
	v := vets.Vet{
		Person: entity.Person{
			BaseEntity: entity.BaseEntity{ID: row.id},
			FirstName:  row.firstName,
			LastName:   row.lastName,
		},
	}
	for sid := range s.vetSpecialties[row.id] {
		if name, ok := s.lookups[catalog.KindSpecialty][sid]; ok {
			v.Specialties = append(v.Specialties, catalog.NewItem(sid, name))
		}
	}
	catalog.SortByName(v.Specialties)
	return v
}
