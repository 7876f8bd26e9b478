package sqlstore

import (
	"fmt"
	"time"

	"petclinic/internal/domain/visits"
)

// dateValue escanea columnas DATE: pgx entrega time.Time y SQLite puede
// entregar texto según el tipo declarado.
type dateValue struct {
	t time.Time
}

func (d *dateValue) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.t = visits.Day(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into date", src)
	}
}

func (d *dateValue) parse(s string) error {
	if len(s) < len(visits.DateLayout) {
		return fmt.Errorf("sqlstore: invalid date %q", s)
	}
	t, err := time.Parse(visits.DateLayout, s[:len(visits.DateLayout)])
	if err != nil {
		return fmt.Errorf("sqlstore: invalid date %q: %w", s, err)
	}
	d.t = t
	return nil
}
