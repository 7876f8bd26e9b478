package memory

import (
	"context"
	"fmt"
	"sort"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/entity"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/visits"
)

type OwnerRepo struct {
	s *Store
}

var _ owners.Repository = (*OwnerRepo)(nil)

// Create valida referencias antes de escribir; si algo falla no queda nada a medias.
func (r *OwnerRepo) Create(ctx context.Context, o *owners.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pets := o.Pets()
	for _, p := range pets {
		if _, ok := r.s.lookups[catalog.KindPetType][p.Type.ID]; !ok {
			return fmt.Errorf("memory: create owner: unknown pet type %d", p.Type.ID)
		}
	}

	o.ID = r.s.next("owners")
	r.s.owners[o.ID] = ownerToRow(*o)

	for i := range pets {
		pets[i].OwnerID = o.ID
		r.s.insertPet(&pets[i])
	}
	o.RestorePets(pets)
	return nil
}

func (r *OwnerRepo) GetByID(ctx context.Context, id int64) (*owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.owners[id]
	if !ok {
		return nil, nil
	}
	o := r.s.hydrateOwner(row)
	return &o, nil
}

func (r *OwnerRepo) List(ctx context.Context) ([]owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]ownerRow, 0, len(r.s.owners))
	for _, row := range r.s.owners {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].lastName == rows[j].lastName {
			return rows[i].id < rows[j].id
		}
		return rows[i].lastName < rows[j].lastName
	})

	out := make([]owners.Owner, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.s.hydrateOwner(row))
	}
	return out, nil
}

func (r *OwnerRepo) Update(ctx context.Context, o owners.Owner) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[o.ID]; !ok {
		return false, nil
	}
	r.s.owners[o.ID] = ownerToRow(o)
	return true, nil
}

// Delete borra visitas, mascotas y el owner.
func (r *OwnerRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[id]; !ok {
		return false, nil
	}
	for pid, p := range r.s.pets {
		if p.ownerID == id {
			r.s.deletePet(pid)
		}
	}
	delete(r.s.owners, id)
	return true, nil
}

func (r *OwnerRepo) CreatePet(ctx context.Context, p *owners.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[p.OwnerID]; !ok {
		return fmt.Errorf("memory: create pet: unknown owner %d", p.OwnerID)
	}
	if _, ok := r.s.lookups[catalog.KindPetType][p.Type.ID]; !ok {
		return fmt.Errorf("memory: create pet: unknown pet type %d", p.Type.ID)
	}
	r.s.insertPet(p)
	return nil
}

func (r *OwnerRepo) GetPet(ctx context.Context, id int64) (*owners.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.pets[id]
	if !ok {
		return nil, nil
	}
	p := r.s.hydratePet(row)
	return &p, nil
}

func (r *OwnerRepo) UpdatePet(ctx context.Context, p owners.Pet) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.pets[p.ID]
	if !ok {
		return false, nil
	}
	cur.name = p.Name
	cur.birthDate = p.BirthDate
	cur.typeID = p.Type.ID
	r.s.pets[p.ID] = cur
	return true, nil
}

func (r *OwnerRepo) DeletePet(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return false, nil
	}
	r.s.deletePet(id)
	return true, nil
}

// insertPet asigna ids a la mascota y sus visitas. Asume el lock tomado.
func (s *Store) insertPet(p *owners.Pet) {
	p.ID = s.next("pets")
	s.pets[p.ID] = petRow{
		id:        p.ID,
		name:      p.Name,
		birthDate: p.BirthDate,
		typeID:    p.Type.ID,
		ownerID:   p.OwnerID,
	}

	vs := p.Visits()
	for i := range vs {
		vs[i].PetID = p.ID
		s.insertVisit(&vs[i])
	}
	p.RestoreVisits(vs)
}

func (s *Store) deletePet(id int64) {
	for vid, v := range s.visits {
		if v.petID == id {
			delete(s.visits, vid)
		}
	}
	delete(s.pets, id)
}

func (s *Store) hydrateOwner(row ownerRow) owners.Owner {
	o := owners.Owner{
		Person: entity.Person{
			BaseEntity: entity.BaseEntity{ID: row.id},
			FirstName:  row.firstName,
			LastName:   row.lastName,
		},
		Address:   row.address,
		City:      row.city,
		Telephone: row.telephone,
	}

	var pets []owners.Pet
	for _, pid := range sortedIDs(s.pets) {
		if p := s.pets[pid]; p.ownerID == row.id {
			pets = append(pets, s.hydratePet(p))
		}
	}
	o.RestorePets(pets)
	return o
}

func (s *Store) hydratePet(row petRow) owners.Pet {
	p := owners.Pet{
		NamedEntity: entity.NamedEntity{BaseEntity: entity.BaseEntity{ID: row.id}, Name: row.name},
		BirthDate:   row.birthDate,
		Type:        catalog.NewItem(row.typeID, s.lookups[catalog.KindPetType][row.typeID]),
		OwnerID:     row.ownerID,
	}
	p.RestoreVisits(s.visitsOf(row.id))
	return p
}

func (s *Store) visitsOf(petID int64) []visits.Visit {
	var out []visits.Visit
	for _, v := range s.visits {
		if v.petID == petID {
			out = append(out, rowToVisit(v))
		}
	}
	visits.SortByDate(out)
	return out
}

func ownerToRow(o owners.Owner) ownerRow {
	return ownerRow{
		id:        o.ID,
		firstName: o.FirstName,
		lastName:  o.LastName,
		address:   o.Address,
		city:      o.City,
		telephone: o.Telephone,
	}
}
