package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/vets"

	sq "github.com/Masterminds/squirrel"
)

type VetRepo struct {
	s *Store
}

var _ vets.Repository = (*VetRepo)(nil)

func (r *VetRepo) Create(ctx context.Context, v *vets.Vet) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := insertReturningID(ctx, tx, r.s.sb.Insert("vets").
			Columns("first_name", "last_name").
			Values(v.FirstName, v.LastName))
		if err != nil {
			return fmt.Errorf("insert vet: %w", err)
		}
		if err := r.linkSpecialties(ctx, tx, id, v.SpecialtyIDs()); err != nil {
			return err
		}
		v.ID = id
		return nil
	})
}

func (r *VetRepo) GetByID(ctx context.Context, id int64) (*vets.Vet, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *VetRepo) ListAll(ctx context.Context) ([]vets.Vet, error) {
	return r.list(ctx, r.s.sb.Select("id", "first_name", "last_name").From("vets").OrderBy("id"))
}

func (r *VetRepo) Update(ctx context.Context, v vets.Vet) (bool, error) {
	var found bool
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := exec(ctx, tx, r.s.sb.Update("vets").
			Set("first_name", v.FirstName).
			Set("last_name", v.LastName).
			Where(sq.Eq{"id": v.ID}))
		if err != nil {
			return fmt.Errorf("update vet: %w", err)
		}
		if n == 0 {
			return nil
		}
		found = true

		if _, err := exec(ctx, tx, r.s.sb.Delete("vet_specialties").Where(sq.Eq{"vet_id": v.ID})); err != nil {
			return fmt.Errorf("clear vet specialties: %w", err)
		}
		return r.linkSpecialties(ctx, tx, v.ID, v.SpecialtyIDs())
	})
	return found, err
}

func (r *VetRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := exec(ctx, tx, r.s.sb.Delete("vet_specialties").Where(sq.Eq{"vet_id": id})); err != nil {
			return fmt.Errorf("delete vet specialties: %w", err)
		}
		n, err := exec(ctx, tx, r.s.sb.Delete("vets").Where(sq.Eq{"id": id}))
		if err != nil {
			return fmt.Errorf("delete vet: %w", err)
		}
		found = n > 0
		return nil
	})
	return found, err
}

// FindByLastName: match exacto (case-sensitive); con apellidos repetidos gana el id menor.
func (r *VetRepo) FindByLastName(ctx context.Context, lastName string) (*vets.Vet, error) {
	return r.findOne(ctx, sq.Eq{"last_name": lastName})
}

func (r *VetRepo) findOne(ctx context.Context, where sq.Sqlizer) (*vets.Vet, error) {
	list, err := r.list(ctx, r.s.sb.Select("id", "first_name", "last_name").
		From("vets").
		Where(where).
		OrderBy("id").
		Limit(1))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (r *VetRepo) list(ctx context.Context, b sq.SelectBuilder) ([]vets.Vet, error) {
	rows, err := queryRows(ctx, r.s.db, b)
	if err != nil {
		return nil, fmt.Errorf("select vets: %w", err)
	}
	defer rows.Close()

	out := make([]vets.Vet, 0)
	for rows.Next() {
		var v vets.Vet
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName); err != nil {
			return nil, fmt.Errorf("scan vet: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(out))
	for _, v := range out {
		ids = append(ids, v.ID)
	}
	specs, err := r.specialtiesOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Specialties = specs[out[i].ID]
	}
	return out, nil
}

func (r *VetRepo) specialtiesOf(ctx context.Context, vetIDs []int64) (map[int64][]catalog.Specialty, error) {
	rows, err := queryRows(ctx, r.s.db, r.s.sb.Select("vs.vet_id", "s.id", "s.name").
		From("vet_specialties vs").
		Join("specialties s ON s.id = vs.specialty_id").
		Where(sq.Eq{"vs.vet_id": vetIDs}).
		OrderBy("s.name", "s.id"))
	if err != nil {
		return nil, fmt.Errorf("select vet specialties: %w", err)
	}
	defer rows.Close()

	out := map[int64][]catalog.Specialty{}
	for rows.Next() {
		var vetID, id int64
		var name string
		if err := rows.Scan(&vetID, &id, &name); err != nil {
			return nil, fmt.Errorf("scan vet specialty: %w", err)
		}
		out[vetID] = append(out[vetID], catalog.NewItem(id, name))
	}
	return out, rows.Err()
}

func (r *VetRepo) linkSpecialties(ctx context.Context, tx *sql.Tx, vetID int64, specialtyIDs []int64) error {
	if len(specialtyIDs) == 0 {
		return nil
	}
	b := r.s.sb.Insert("vet_specialties").Columns("vet_id", "specialty_id")
	for _, sid := range specialtyIDs {
		b = b.Values(vetID, sid)
	}
	if _, err := exec(ctx, tx, b); err != nil {
		return fmt.Errorf("insert vet specialties: %w", err)
	}
	return nil
}

// isNoRows simplifica los GetByID que usan QueryRow.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
