package sqlstore

import (
	"context"
	"fmt"

	"petclinic/internal/domain/visits"

	sq "github.com/Masterminds/squirrel"
)

type VisitRepo struct {
	s *Store
}

var _ visits.Repository = (*VisitRepo)(nil)

func (r *VisitRepo) Create(ctx context.Context, v *visits.Visit) error {
	return insertVisit(ctx, r.s, r.s.db, v)
}

func (r *VisitRepo) GetByID(ctx context.Context, id int64) (*visits.Visit, error) {
	vs, err := listVisits(ctx, r.s, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(vs) == 0 {
		return nil, nil
	}
	return &vs[0], nil
}

func (r *VisitRepo) ListByPet(ctx context.Context, petID int64) ([]visits.Visit, error) {
	return listVisits(ctx, r.s, sq.Eq{"pet_id": petID})
}

func (r *VisitRepo) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := exec(ctx, r.s.db, r.s.sb.Delete("visits").Where(sq.Eq{"id": id}))
	if err != nil {
		return false, fmt.Errorf("delete visit: %w", err)
	}
	return n > 0, nil
}

func insertVisit(ctx context.Context, s *Store, q querier, v *visits.Visit) error {
	id, err := insertReturningID(ctx, q, s.sb.Insert("visits").
		Columns("pet_id", "visit_date", "description").
		Values(v.PetID, v.Date.Format(visits.DateLayout), v.Description))
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	v.ID = id
	return nil
}

func listVisits(ctx context.Context, s *Store, where sq.Sqlizer) ([]visits.Visit, error) {
	rows, err := queryRows(ctx, s.db, s.sb.Select("id", "pet_id", "visit_date", "description").
		From("visits").
		Where(where).
		OrderBy("visit_date", "id"))
	if err != nil {
		return nil, fmt.Errorf("select visits: %w", err)
	}
	defer rows.Close()

	out := make([]visits.Visit, 0)
	for rows.Next() {
		var v visits.Visit
		var date dateValue
		if err := rows.Scan(&v.ID, &v.PetID, &date, &v.Description); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.Date = date.t
		out = append(out, v)
	}
	return out, rows.Err()
}
