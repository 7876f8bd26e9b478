package owners

import (
	"context"
	"sort"
	"testing"
	"time"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/visits"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo guarda el agregado completo en memoria.
type fakeRepo struct {
	nextOwner, nextPet, nextVisit int64
	owners                        map[int64]Owner
	pets                          map[int64]Pet
	createCalls                   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{owners: map[int64]Owner{}, pets: map[int64]Pet{}}
}

func (r *fakeRepo) Create(_ context.Context, o *Owner) error {
	r.createCalls++
	r.nextOwner++
	o.ID = r.nextOwner

	pets := o.Pets()
	for i := range pets {
		pets[i].OwnerID = o.ID
		r.assignPet(&pets[i])
	}
	o.RestorePets(pets)

	stored := *o
	stored.pets = nil
	r.owners[o.ID] = stored
	return nil
}

func (r *fakeRepo) assignPet(p *Pet) {
	r.nextPet++
	p.ID = r.nextPet
	vs := p.Visits()
	for j := range vs {
		r.nextVisit++
		vs[j].ID = r.nextVisit
	}
	p.RestoreVisits(vs)
	r.pets[p.ID] = *p
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, nil
	}
	var pets []Pet
	for _, p := range r.pets {
		if p.OwnerID == id {
			pets = append(pets, p)
		}
	}
	o.RestorePets(pets)
	return &o, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]Owner, error) {
	ids := make([]int64, 0, len(r.owners))
	for id := range r.owners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Owner, 0, len(ids))
	for _, id := range ids {
		o, _ := r.GetByID(ctx, id)
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, o Owner) (bool, error) {
	if _, ok := r.owners[o.ID]; !ok {
		return false, nil
	}
	r.owners[o.ID] = o
	return true, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.owners[id]; !ok {
		return false, nil
	}
	for pid, p := range r.pets {
		if p.OwnerID == id {
			delete(r.pets, pid)
		}
	}
	delete(r.owners, id)
	return true, nil
}

func (r *fakeRepo) CreatePet(_ context.Context, p *Pet) error {
	r.assignPet(p)
	return nil
}

func (r *fakeRepo) GetPet(_ context.Context, id int64) (*Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeRepo) UpdatePet(_ context.Context, p Pet) (bool, error) {
	cur, ok := r.pets[p.ID]
	if !ok {
		return false, nil
	}
	p.RestoreVisits(cur.Visits())
	r.pets[p.ID] = p
	return true, nil
}

func (r *fakeRepo) DeletePet(_ context.Context, id int64) (bool, error) {
	if _, ok := r.pets[id]; !ok {
		return false, nil
	}
	delete(r.pets, id)
	return true, nil
}

type fakeTypes struct{}

func (fakeTypes) Resolve(_ context.Context, _ catalog.Kind, ids []int64) ([]catalog.Item, error) {
	names := map[int64]string{1: "cat", 2: "dog"}
	out := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			return nil, catalog.ErrInvalidInput
		}
		out = append(out, catalog.NewItem(id, name))
	}
	return out, nil
}

var today = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeTypes{})
	svc.now = func() time.Time { return today }
	return svc, repo
}

func georgeInput() OwnerInput {
	return OwnerInput{
		FirstName: "George",
		LastName:  "Franklin",
		Address:   "110 W. Liberty St.",
		City:      "Madison",
		Telephone: "6085551023",
	}
}

func TestService_CreateAggregate(t *testing.T) {
	svc, _ := newTestService()
	in := georgeInput()
	in.Pets = []PetInput{
		{
			Name:      "Leo",
			BirthDate: time.Date(2010, 9, 7, 0, 0, 0, 0, time.UTC),
			TypeID:    1,
			Visits: []visits.Input{
				{Description: "checkup"},
				{Date: time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), Description: "rabies shot"},
			},
		},
	}

	o, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), o.ID)

	pets := o.Pets()
	require.Len(t, pets, 1)
	assert.Equal(t, int64(1), pets[0].ID)
	assert.Equal(t, o.ID, pets[0].OwnerID)
	assert.Equal(t, "cat", pets[0].Type.Name)

	vs := pets[0].Visits()
	require.Len(t, vs, 2)
	assert.Equal(t, "rabies shot", vs[0].Description)
	assert.Equal(t, "2024-05-01", vs[1].Date.Format(visits.DateLayout))
	assert.Equal(t, pets[0].ID, vs[1].PetID)
}

func TestService_CreateInvalidNestedPersistsNothing(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	in := georgeInput()
	in.Pets = []PetInput{{
		Name:      "Leo",
		BirthDate: time.Date(2010, 9, 7, 0, 0, 0, 0, time.UTC),
		TypeID:    1,
		Visits:    []visits.Input{{Description: " "}},
	}}
	_, err := svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in.Pets = []PetInput{
		{Name: "Leo", BirthDate: time.Date(2010, 9, 7, 0, 0, 0, 0, time.UTC), TypeID: 1},
		{Name: "leo", BirthDate: time.Date(2011, 9, 7, 0, 0, 0, 0, time.UTC), TypeID: 2},
	}
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicatePet)

	assert.Zero(t, repo.createCalls)
}

func TestService_OwnerValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := map[string]func(*OwnerInput){
		"missing first name": func(in *OwnerInput) { in.FirstName = "" },
		"missing city":       func(in *OwnerInput) { in.City = " " },
		"phone with letters": func(in *OwnerInput) { in.Telephone = "60855x1023" },
		"phone too long":     func(in *OwnerInput) { in.Telephone = "60855510231" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := georgeInput()
			mutate(&in)
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_PetLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	o, err := svc.Create(ctx, georgeInput())
	require.NoError(t, err)

	p, err := svc.AddPet(ctx, o.ID, PetInput{Name: "Basil", BirthDate: time.Date(2012, 8, 6, 0, 0, 0, 0, time.UTC), TypeID: 2})
	require.NoError(t, err)
	assert.Equal(t, o.ID, p.OwnerID)

	_, err = svc.AddPet(ctx, o.ID, PetInput{Name: "BASIL", BirthDate: time.Date(2012, 8, 6, 0, 0, 0, 0, time.UTC), TypeID: 2})
	assert.ErrorIs(t, err, ErrDuplicatePet)

	_, err = svc.AddPet(ctx, o.ID, PetInput{Name: "Future", BirthDate: today.AddDate(0, 0, 1), TypeID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddPet(ctx, o.ID, PetInput{Name: "Nope", BirthDate: today, TypeID: 99})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddPet(ctx, 999, PetInput{Name: "Orphan", BirthDate: today, TypeID: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := svc.PetOfOwner(ctx, o.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.PetOfOwner(ctx, o.ID+1, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	updated, err := svc.UpdatePet(ctx, o.ID, p.ID, PetInput{Name: "basil", BirthDate: p.BirthDate, TypeID: 1})
	require.NoError(t, err, "renombrar la misma mascota no es duplicado")
	assert.Equal(t, "cat", updated.Type.Name)

	require.NoError(t, svc.DeletePet(ctx, o.ID, p.ID))
	assert.ErrorIs(t, svc.DeletePet(ctx, o.ID, p.ID), ErrPetNotFound)
}

func TestService_UpdateAndDeleteOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	o, err := svc.Create(ctx, georgeInput())
	require.NoError(t, err)

	in := georgeInput()
	in.City = "Monona"
	got, err := svc.Update(ctx, o.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Monona", got.City)

	_, err = svc.Update(ctx, 404, in)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, o.ID))
	assert.ErrorIs(t, svc.Delete(ctx, o.ID), ErrNotFound)
}
