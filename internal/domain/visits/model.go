package visits

import (
	"sort"
	"time"

	"petclinic/internal/domain/entity"
)

// DateLayout es el formato de fecha (sin hora) usado en JSON.
const DateLayout = "2006-01-02"

// Visit es una visita de una mascota a la clínica.
type Visit struct {
	entity.BaseEntity
	Date        time.Time
	Description string
	PetID       int64
}

// Day trunca t al día (UTC).
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortByDate ordena in-place por fecha ascendente y, en empate, por id.
func SortByDate(vs []Visit) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Date.Equal(vs[j].Date) {
			return vs[i].ID < vs[j].ID
		}
		return vs[i].Date.Before(vs[j].Date)
	})
}
