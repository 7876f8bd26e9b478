package owners

import (
	"testing"
	"time"

	"petclinic/internal/domain/entity"
	"petclinic/internal/domain/visits"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPet(id int64, name string) *Pet {
	return &Pet{NamedEntity: entity.NamedEntity{BaseEntity: entity.BaseEntity{ID: id}, Name: name}}
}

func TestOwner_PetsSortedAndIdempotent(t *testing.T) {
	o := &Owner{Person: entity.Person{BaseEntity: entity.BaseEntity{ID: 3}}}
	o.AddPet(newPet(0, "Rosy"))
	o.AddPet(newPet(0, "Jewel"))
	o.AddPet(newPet(0, "Basil"))

	first := o.Pets()
	second := o.Pets()
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Basil", "Jewel", "Rosy"}, []string{first[0].Name, first[1].Name, first[2].Name})

	// la vista es una copia
	first[0].Name = "Changed"
	assert.Equal(t, "Basil", o.Pets()[0].Name)
}

func TestOwner_AddPetRebindsExistingWithoutDuplicating(t *testing.T) {
	o := &Owner{Person: entity.Person{BaseEntity: entity.BaseEntity{ID: 7}}}

	fresh := newPet(0, "Leo")
	o.AddPet(fresh)
	assert.Equal(t, int64(7), fresh.OwnerID)

	persisted := newPet(12, "Lucky")
	persisted.OwnerID = 1
	o.AddPet(persisted)

	assert.Equal(t, int64(7), persisted.OwnerID)
	assert.Len(t, o.Pets(), 1)
}

func TestOwner_PetWithNameIgnoresCase(t *testing.T) {
	o := &Owner{}
	o.RestorePets([]Pet{*newPet(4, "Max"), *newPet(5, "Iggy")})

	p := o.PetWithName("iggy")
	require.NotNil(t, p)
	assert.Equal(t, int64(5), p.ID)

	assert.Nil(t, o.PetWithName("Samantha"))
}

func TestPet_VisitsSortedByDate(t *testing.T) {
	p := newPet(8, "Max")
	d := time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)

	late := visits.Visit{Date: d.AddDate(0, 0, 2), Description: "neutered"}
	early := visits.Visit{Date: d, Description: "rabies shot"}
	p.AddVisit(&late)
	p.AddVisit(&early)

	assert.Equal(t, int64(8), late.PetID)
	vs := p.Visits()
	require.Len(t, vs, 2)
	assert.Equal(t, "rabies shot", vs[0].Description)
	assert.Equal(t, "neutered", vs[1].Description)
}
