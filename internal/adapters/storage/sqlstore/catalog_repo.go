package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"petclinic/internal/domain/catalog"

	sq "github.com/Masterminds/squirrel"
)

type CatalogRepo struct {
	s *Store
}

var _ catalog.Repository = (*CatalogRepo)(nil)

// table devuelve el nombre de tabla; Kind.Valid evita interpolar cualquier cosa.
func table(kind catalog.Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("sqlstore: invalid catalog kind %q", kind)
	}
	return string(kind), nil
}

func (r *CatalogRepo) List(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}

	rows, err := queryRows(ctx, r.s.db, r.s.sb.Select("id", "name").From(t).OrderBy("name", "id"))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t, err)
	}
	defer rows.Close()

	out := make([]catalog.Item, 0)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t, err)
		}
		out = append(out, catalog.NewItem(id, name))
	}
	return out, rows.Err()
}

func (r *CatalogRepo) GetByID(ctx context.Context, kind catalog.Kind, id int64) (*catalog.Item, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}

	row, err := queryOne(ctx, r.s.db, r.s.sb.Select("id", "name").From(t).Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	var it catalog.Item
	if err := row.Scan(&it.ID, &it.Name); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select %s: %w", t, err)
	}
	return &it, nil
}

func (r *CatalogRepo) Create(ctx context.Context, kind catalog.Kind, it *catalog.Item) error {
	t, err := table(kind)
	if err != nil {
		return err
	}

	id, err := insertReturningID(ctx, r.s.db, r.s.sb.Insert(t).Columns("name").Values(it.Name))
	if err != nil {
		return fmt.Errorf("insert %s: %w", t, err)
	}
	it.ID = id
	return nil
}

func (r *CatalogRepo) Update(ctx context.Context, kind catalog.Kind, it catalog.Item) (bool, error) {
	t, err := table(kind)
	if err != nil {
		return false, err
	}

	n, err := exec(ctx, r.s.db, r.s.sb.Update(t).Set("name", it.Name).Where(sq.Eq{"id": it.ID}))
	if err != nil {
		return false, fmt.Errorf("update %s: %w", t, err)
	}
	return n > 0, nil
}

// Delete devuelve catalog.ErrInUse si el item está referenciado.
func (r *CatalogRepo) Delete(ctx context.Context, kind catalog.Kind, id int64) (bool, error) {
	t, err := table(kind)
	if err != nil {
		return false, err
	}

	var found bool
	err = r.s.withTx(ctx, func(tx *sql.Tx) error {
		refs, err := r.references(ctx, tx, kind, id)
		if err != nil {
			return err
		}
		// las FKs garantizan que si hay referencias el item existe
		if refs > 0 {
			return catalog.ErrInUse
		}

		n, err := exec(ctx, tx, r.s.sb.Delete(t).Where(sq.Eq{"id": id}))
		if err != nil {
			return fmt.Errorf("delete %s: %w", t, err)
		}
		found = n > 0
		return nil
	})
	return found, err
}

func (r *CatalogRepo) references(ctx context.Context, q querier, kind catalog.Kind, id int64) (int64, error) {
	var b sq.SelectBuilder
	switch kind {
	case catalog.KindPetType:
		b = r.s.sb.Select("COUNT(*)").From("pets").Where(sq.Eq{"type_id": id})
	default:
		b = r.s.sb.Select("COUNT(*)").From("vet_specialties").Where(sq.Eq{"specialty_id": id})
	}

	row, err := queryOne(ctx, q, b)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count references: %w", err)
	}
	return n, nil
}
