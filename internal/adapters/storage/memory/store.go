package memory

import (
	"sort"
	"sync"
	"time"

	"petclinic/internal/domain/catalog"
)

// Store guarda todas las tablas en memoria detrás de un único lock, así las
// operaciones sobre el agregado owner son atómicas igual que en SQL.
type Store struct {
	mu sync.RWMutex

	seq map[string]int64

	vets           map[int64]vetRow
	vetSpecialties map[int64]map[int64]struct{}
	lookups        map[catalog.Kind]map[int64]string
	owners         map[int64]ownerRow
	pets           map[int64]petRow
	visits         map[int64]visitRow
}

type vetRow struct {
	id        int64
	firstName string
	lastName  string
}

type ownerRow struct {
	id        int64
	firstName string
	lastName  string
	address   string
	city      string
	telephone string
}

type petRow struct {
	id        int64
	name      string
	birthDate time.Time
	typeID    int64
	ownerID   int64
}

type visitRow struct {
	id          int64
	petID       int64
	date        time.Time
	description string
}

// NewStore devuelve un store vacío. Ver NewSeededStore para los datos de ejemplo.
func NewStore() *Store {
	return &Store{
		seq:            map[string]int64{},
		vets:           map[int64]vetRow{},
		vetSpecialties: map[int64]map[int64]struct{}{},
		lookups: map[catalog.Kind]map[int64]string{
			catalog.KindPetType:   {},
			catalog.KindSpecialty: {},
		},
		owners: map[int64]ownerRow{},
		pets:   map[int64]petRow{},
		visits: map[int64]visitRow{},
	}
}

// next asume el lock tomado.
func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// bump mantiene la secuencia por encima de ids cargados a mano (seed).
func (s *Store) bump(table string, id int64) {
	if id > s.seq[table] {
		s.seq[table] = id
	}
}

func (s *Store) Vets() *VetRepo { return &VetRepo{s: s} }
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{s: s} }
func (s *Store) Owners() *OwnerRepo { return &OwnerRepo{s: s} }
func (s *Store) Visits() *VisitRepo { return &VisitRepo{s: s} }

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
