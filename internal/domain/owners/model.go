package owners

import (
	"sort"
	"strings"
	"time"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/entity"
	"petclinic/internal/domain/visits"
)

// Owner es la raíz del agregado owner -> pets -> visits.
type Owner struct {
	entity.Person
	Address   string
	City      string
	Telephone string

	pets []*Pet
}

// Pets devuelve una copia ordenada por nombre; modificarla no altera al owner.
func (o *Owner) Pets() []Pet {
	out := make([]Pet, 0, len(o.pets))
	for _, p := range o.pets {
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AddPet agrega p sólo si todavía no fue persistida; en cualquier caso
// p queda apuntando a este owner.
func (o *Owner) AddPet(p *Pet) {
	if p.IsNew() {
		o.pets = append(o.pets, p)
	}
	p.OwnerID = o.ID
}

// PetWithName busca sin distinguir mayúsculas. nil si no hay.
func (o *Owner) PetWithName(name string) *Pet {
	for _, p := range o.pets {
		if strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp
		}
	}
	return nil
}

// RestorePets reemplaza el set de mascotas. Sólo para adapters de storage.
func (o *Owner) RestorePets(pets []Pet) {
	o.pets = make([]*Pet, 0, len(pets))
	for i := range pets {
		p := pets[i]
		p.OwnerID = o.ID
		o.pets = append(o.pets, &p)
	}
}

// Pet es una mascota; pertenece a exactamente un owner.
type Pet struct {
	entity.NamedEntity
	BirthDate time.Time
	Type      catalog.PetType
	OwnerID   int64

	visits []visits.Visit
}

// Visits devuelve una copia ordenada por fecha.
func (p Pet) Visits() []visits.Visit {
	out := make([]visits.Visit, len(p.visits))
	copy(out, p.visits)
	visits.SortByDate(out)
	return out
}

// AddVisit agrega la visita y la asocia a esta mascota.
func (p *Pet) AddVisit(v *visits.Visit) {
	v.PetID = p.ID
	p.visits = append(p.visits, *v)
}

// RestoreVisits reemplaza el set de visitas. Sólo para adapters de storage.
func (p *Pet) RestoreVisits(vs []visits.Visit) {
	p.visits = make([]visits.Visit, len(vs))
	copy(p.visits, vs)
	for i := range p.visits {
		p.visits[i].PetID = p.ID
	}
}
