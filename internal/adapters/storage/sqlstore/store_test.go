package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"petclinic/internal/adapters/storage/sqlite"
	"petclinic/internal/adapters/storage/sqlstore"
	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/entity"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/vets"
	"petclinic/internal/domain/visits"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "petclinic.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlstore.Migrate(db, sqlstore.SQLite, "up", nil))
	return sqlstore.New(db, sqlstore.SQLite)
}

func TestVets_SeededData(t *testing.T) {
	repo := newSeededStore(t).Vets()
	ctx := context.Background()

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "Carter", all[0].LastName)
	assert.Equal(t, "Jenkins", all[5].LastName)

	douglas := all[2]
	require.Equal(t, 2, douglas.NrOfSpecialties())
	assert.Equal(t, "dentistry", douglas.Specialties[0].Name)
	assert.Equal(t, "surgery", douglas.Specialties[1].Name)

	stevens, err := repo.FindByLastName(ctx, "Stevens")
	require.NoError(t, err)
	require.NotNil(t, stevens)
	assert.Equal(t, int64(5), stevens.ID)
	require.Len(t, stevens.Specialties, 1)
	assert.Equal(t, "radiology", stevens.Specialties[0].Name)

	for _, name := range []string{"stevens", "Smith", ""} {
		v, err := repo.FindByLastName(ctx, name)
		require.NoError(t, err)
		assert.Nil(t, v, name)
	}
}

func TestVets_CRUD(t *testing.T) {
	repo := newSeededStore(t).Vets()
	ctx := context.Background()

	v := &vets.Vet{
		Person:      entity.Person{FirstName: "Ana", LastName: "Gomez"},
		Specialties: []catalog.Specialty{catalog.NewItem(2, "surgery"), catalog.NewItem(3, "dentistry")},
	}
	require.NoError(t, repo.Create(ctx, v))
	assert.Equal(t, int64(7), v.ID)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.NrOfSpecialties())

	v.Specialties = nil
	ok, err := repo.Update(ctx, *v)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Zero(t, got.NrOfSpecialties())

	ok, err = repo.Update(ctx, vets.Vet{Person: entity.Person{BaseEntity: entity.BaseEntity{ID: 99}, FirstName: "x", LastName: "y"}})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCatalog_InUseAndCRUD(t *testing.T) {
	repo := newSeededStore(t).Catalog()
	ctx := context.Background()

	types, err := repo.List(ctx, catalog.KindPetType)
	require.NoError(t, err)
	require.Len(t, types, 6)
	assert.Equal(t, "bird", types[0].Name)

	_, err = repo.Delete(ctx, catalog.KindPetType, 1)
	assert.ErrorIs(t, err, catalog.ErrInUse)

	_, err = repo.Delete(ctx, catalog.KindSpecialty, 1)
	assert.ErrorIs(t, err, catalog.ErrInUse)

	it := catalog.NewItem(0, "ferret")
	require.NoError(t, repo.Create(ctx, catalog.KindPetType, &it))
	assert.Equal(t, int64(7), it.ID)

	ok, err := repo.Delete(ctx, catalog.KindPetType, it.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	missing, err := repo.GetByID(ctx, catalog.KindPetType, it.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOwners_AggregateRoundTrip(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	o := &owners.Owner{
		Person:    entity.Person{FirstName: "Ana", LastName: "Lopez"},
		Address:   "1 Main St.",
		City:      "Madison",
		Telephone: "6085550000",
	}
	p := &owners.Pet{
		NamedEntity: entity.NamedEntity{Name: "Toby"},
		BirthDate:   time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
		Type:        catalog.NewItem(2, "dog"),
	}
	v := visits.Visit{Date: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), Description: "checkup"}
	p.AddVisit(&v)
	o.AddPet(p)

	require.NoError(t, s.Owners().Create(ctx, o))
	assert.Equal(t, int64(11), o.ID)

	got, err := s.Owners().GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	pets := got.Pets()
	require.Len(t, pets, 1)
	assert.Equal(t, int64(14), pets[0].ID)
	assert.Equal(t, "dog", pets[0].Type.Name)
	assert.Equal(t, "2020-02-29", pets[0].BirthDate.Format(visits.DateLayout))

	vs := pets[0].Visits()
	require.Len(t, vs, 1)
	assert.Equal(t, int64(5), vs[0].ID)
	assert.Equal(t, "2021-03-01", vs[0].Date.Format(visits.DateLayout))

	ok, err := s.Owners().Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gonePet, err := s.Owners().GetPet(ctx, 14)
	require.NoError(t, err)
	assert.Nil(t, gonePet)

	goneVisit, err := s.Visits().GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, goneVisit)
}

func TestOwners_FailedAggregateRollsBack(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	o := &owners.Owner{
		Person:    entity.Person{FirstName: "Bad", LastName: "Type"},
		Address:   "x",
		City:      "y",
		Telephone: "1",
	}
	o.AddPet(&owners.Pet{
		NamedEntity: entity.NamedEntity{Name: "Ghost"},
		BirthDate:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:        catalog.NewItem(999, "unknown"),
	})

	require.Error(t, s.Owners().Create(ctx, o))
	assert.Zero(t, o.ID)

	list, err := s.Owners().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 10)
}

func TestOwners_ListOrderAndSeededVisits(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	list, err := s.Owners().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 10)
	assert.Equal(t, "Black", list[0].LastName)
	assert.Equal(t, []int64{2, 4}, []int64{list[2].ID, list[3].ID})

	vs, err := s.Visits().ListByPet(ctx, 8)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "rabies shot", vs[0].Description)
	assert.Equal(t, "neutered", vs[1].Description)
}

func TestPets_UpdateAndDelete(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	p, err := s.Owners().GetPet(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Samantha", p.Name)
	assert.Len(t, p.Visits(), 2)

	p.Name = "Sam"
	p.Type = catalog.NewItem(2, "dog")
	ok, err := s.Owners().UpdatePet(ctx, *p)
	require.NoError(t, err)
	assert.True(t, ok)

	p, err = s.Owners().GetPet(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Sam", p.Name)
	assert.Equal(t, "dog", p.Type.Name)

	ok, err = s.Owners().DeletePet(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	vs, err := s.Visits().ListByPet(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, vs)
}
