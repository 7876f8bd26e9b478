package vets

import (
	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/entity"
)

// Vet es un veterinario con sus especialidades.
type Vet struct {
	entity.Person
	Specialties []catalog.Specialty
}

func (v Vet) NrOfSpecialties() int {
	return len(v.Specialties)
}

// SpecialtiesByName devuelve una copia ordenada por nombre.
func (v Vet) SpecialtiesByName() []catalog.Specialty {
	out := make([]catalog.Specialty, len(v.Specialties))
	copy(out, v.Specialties)
	catalog.SortByName(out)
	return out
}

// SpecialtyIDs se usa en los adapters para escribir vet_specialties.
func (v Vet) SpecialtyIDs() []int64 {
	out := make([]int64, 0, len(v.Specialties))
	for _, s := range v.Specialties {
		out = append(out, s.ID)
	}
	return out
}
