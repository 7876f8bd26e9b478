package catalog

import (
	"sort"

	"petclinic/internal/domain/entity"
)

// Kind identifica la tabla de lookup. El valor coincide con el nombre de la tabla.
type Kind string

const (
	KindPetType   Kind = "types"
	KindSpecialty Kind = "specialties"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPetType, KindSpecialty:
		return true
	default:
		return false
	}
}

// Item es una entidad de referencia con nombre (tipo de mascota, especialidad).
type Item struct {
	entity.NamedEntity
}

type (
	PetType   = Item
	Specialty = Item
)

func NewItem(id int64, name string) Item {
	return Item{NamedEntity: entity.NamedEntity{BaseEntity: entity.BaseEntity{ID: id}, Name: name}}
}

// SortByName ordena in-place por nombre y, en empate, por id.
func SortByName(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Name == items[j].Name {
			return items[i].ID < items[j].ID
		}
		return items[i].Name < items[j].Name
	})
}
