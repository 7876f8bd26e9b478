package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/visits"

	sq "github.com/Masterminds/squirrel"
)

type OwnerRepo struct {
	s *Store
}

var _ owners.Repository = (*OwnerRepo)(nil)

var ownerColumns = []string{"id", "first_name", "last_name", "address", "city", "telephone"}

// Create inserta owner, mascotas y visitas en una transacción.
func (r *OwnerRepo) Create(ctx context.Context, o *owners.Owner) error {
	pets := o.Pets()
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := insertReturningID(ctx, tx, r.s.sb.Insert("owners").
			Columns("first_name", "last_name", "address", "city", "telephone").
			Values(o.FirstName, o.LastName, o.Address, o.City, o.Telephone))
		if err != nil {
			return fmt.Errorf("insert owner: %w", err)
		}
		o.ID = id

		for i := range pets {
			pets[i].OwnerID = id
			if err := r.insertPet(ctx, tx, &pets[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		o.ID = 0
		return err
	}
	o.RestorePets(pets)
	return nil
}

func (r *OwnerRepo) GetByID(ctx context.Context, id int64) (*owners.Owner, error) {
	list, err := r.list(ctx, r.s.sb.Select(ownerColumns...).From("owners").Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (r *OwnerRepo) List(ctx context.Context) ([]owners.Owner, error) {
	return r.list(ctx, r.s.sb.Select(ownerColumns...).From("owners").OrderBy("last_name", "id"))
}

func (r *OwnerRepo) Update(ctx context.Context, o owners.Owner) (bool, error) {
	n, err := exec(ctx, r.s.db, r.s.sb.Update("owners").
		Set("first_name", o.FirstName).
		Set("last_name", o.LastName).
		Set("address", o.Address).
		Set("city", o.City).
		Set("telephone", o.Telephone).
		Where(sq.Eq{"id": o.ID}))
	if err != nil {
		return false, fmt.Errorf("update owner: %w", err)
	}
	return n > 0, nil
}

// Delete borra visitas -> mascotas -> owner en una transacción.
func (r *OwnerRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := exec(ctx, tx, r.s.sb.Delete("visits").
			Where("pet_id IN (SELECT id FROM pets WHERE owner_id = ?)", id)); err != nil {
			return fmt.Errorf("delete owner visits: %w", err)
		}
		if _, err := exec(ctx, tx, r.s.sb.Delete("pets").Where(sq.Eq{"owner_id": id})); err != nil {
			return fmt.Errorf("delete owner pets: %w", err)
		}
		n, err := exec(ctx, tx, r.s.sb.Delete("owners").Where(sq.Eq{"id": id}))
		if err != nil {
			return fmt.Errorf("delete owner: %w", err)
		}
		found = n > 0
		return nil
	})
	return found, err
}

func (r *OwnerRepo) CreatePet(ctx context.Context, p *owners.Pet) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		return r.insertPet(ctx, tx, p)
	})
}

func (r *OwnerRepo) GetPet(ctx context.Context, id int64) (*owners.Pet, error) {
	pets, err := r.pets(ctx, sq.Eq{"p.id": id})
	if err != nil {
		return nil, err
	}
	if len(pets) == 0 {
		return nil, nil
	}
	return &pets[0], nil
}

func (r *OwnerRepo) UpdatePet(ctx context.Context, p owners.Pet) (bool, error) {
	n, err := exec(ctx, r.s.db, r.s.sb.Update("pets").
		Set("name", p.Name).
		Set("birth_date", p.BirthDate.Format(visits.DateLayout)).
		Set("type_id", p.Type.ID).
		Where(sq.Eq{"id": p.ID}))
	if err != nil {
		return false, fmt.Errorf("update pet: %w", err)
	}
	return n > 0, nil
}

func (r *OwnerRepo) DeletePet(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := exec(ctx, tx, r.s.sb.Delete("visits").Where(sq.Eq{"pet_id": id})); err != nil {
			return fmt.Errorf("delete pet visits: %w", err)
		}
		n, err := exec(ctx, tx, r.s.sb.Delete("pets").Where(sq.Eq{"id": id}))
		if err != nil {
			return fmt.Errorf("delete pet: %w", err)
		}
		found = n > 0
		return nil
	})
	return found, err
}

func (r *OwnerRepo) insertPet(ctx context.Context, tx *sql.Tx, p *owners.Pet) error {
	id, err := insertReturningID(ctx, tx, r.s.sb.Insert("pets").
		Columns("name", "birth_date", "type_id", "owner_id").
		Values(p.Name, p.BirthDate.Format(visits.DateLayout), p.Type.ID, p.OwnerID))
	if err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	p.ID = id

	vs := p.Visits()
	for i := range vs {
		vs[i].PetID = id
		if err := insertVisit(ctx, r.s, tx, &vs[i]); err != nil {
			return err
		}
	}
	p.RestoreVisits(vs)
	return nil
}

func (r *OwnerRepo) list(ctx context.Context, b sq.SelectBuilder) ([]owners.Owner, error) {
	rows, err := queryRows(ctx, r.s.db, b)
	if err != nil {
		return nil, fmt.Errorf("select owners: %w", err)
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(out))
	for _, o := range out {
		ids = append(ids, o.ID)
	}
	pets, err := r.pets(ctx, sq.Eq{"p.owner_id": ids})
	if err != nil {
		return nil, err
	}

	byOwner := map[int64][]owners.Pet{}
	for _, p := range pets {
		byOwner[p.OwnerID] = append(byOwner[p.OwnerID], p)
	}
	for i := range out {
		out[i].RestorePets(byOwner[out[i].ID])
	}
	return out, nil
}

// pets carga mascotas con su tipo y sus visitas.
func (r *OwnerRepo) pets(ctx context.Context, where sq.Sqlizer) ([]owners.Pet, error) {
	rows, err := queryRows(ctx, r.s.db, r.s.sb.
		Select("p.id", "p.name", "p.birth_date", "p.owner_id", "t.id", "t.name").
		From("pets p").
		Join("types t ON t.id = p.type_id").
		Where(where).
		OrderBy("p.name", "p.id"))
	if err != nil {
		return nil, fmt.Errorf("select pets: %w", err)
	}
	defer rows.Close()

	out := make([]owners.Pet, 0)
	for rows.Next() {
		var (
			p        owners.Pet
			birth    dateValue
			typeID   int64
			typeName string
		)
		if err := rows.Scan(&p.ID, &p.Name, &birth, &p.OwnerID, &typeID, &typeName); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		p.BirthDate = birth.t
		p.Type = catalog.NewItem(typeID, typeName)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(out))
	for _, p := range out {
		ids = append(ids, p.ID)
	}
	vs, err := listVisits(ctx, r.s, sq.Eq{"pet_id": ids})
	if err != nil {
		return nil, err
	}

	byPet := map[int64][]visits.Visit{}
	for _, v := range vs {
		byPet[v.PetID] = append(byPet[v.PetID], v)
	}
	for i := range out {
		out[i].RestoreVisits(byPet[out[i].ID])
	}
	return out, nil
}
