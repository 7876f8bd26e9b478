package vets

import (
	"context"
	"sort"
	"sync"
	"testing"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo es un repo en memoria mínimo para tests del paquete.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]Vet
}

func newFakeRepo(seed ...Vet) *fakeRepo {
	r := &fakeRepo{items: map[int64]Vet{}}
	for _, v := range seed {
		r.items[v.ID] = v
		if v.ID > r.nextID {
			r.nextID = v.ID
		}
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, v *Vet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	v.ID = r.nextID
	r.items[v.ID] = *v
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Vet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]Vet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Vet, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, v Vet) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[v.ID]; !ok {
		return false, nil
	}
	r.items[v.ID] = v
	return true, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *fakeRepo) FindByLastName(ctx context.Context, lastName string) (*Vet, error) {
	all, _ := r.ListAll(ctx)
	for _, v := range all {
		if v.LastName == lastName {
			return &v, nil
		}
	}
	return nil, nil
}

type fakeResolver struct {
	items map[int64]catalog.Item
}

func (f fakeResolver) Resolve(_ context.Context, _ catalog.Kind, ids []int64) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		it, ok := f.items[id]
		if !ok {
			return nil, catalog.ErrInvalidInput
		}
		out = append(out, it)
	}
	catalog.SortByName(out)
	return out, nil
}

func person(id int64, first, last string) entity.Person {
	return entity.Person{BaseEntity: entity.BaseEntity{ID: id}, FirstName: first, LastName: last}
}

func fixedVets() *fakeRepo {
	return newFakeRepo(
		Vet{Person: person(1, "Henry", "Stevens")},
		Vet{Person: person(2, "Sharon", "Jenkins")},
	)
}

func TestService_FindByName(t *testing.T) {
	svc := NewService(fixedVets(), nil)
	ctx := context.Background()

	v, err := svc.FindByName(ctx, "Stevens")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(1), v.ID)
	assert.Equal(t, "Henry", v.FirstName)

	v, err = svc.FindByName(ctx, "stevens")
	require.NoError(t, err)
	assert.Nil(t, v, "el match es case-sensitive")

	v, err = svc.FindByName(ctx, "Carter")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = svc.FindByName(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestService_ListAllVets_Ordered(t *testing.T) {
	svc := NewService(fixedVets(), nil)

	list, err := svc.ListAllVets(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Stevens", list[0].LastName)
	assert.Equal(t, "Jenkins", list[1].LastName)
}

func TestService_CreateWithSpecialties(t *testing.T) {
	res := fakeResolver{items: map[int64]catalog.Item{
		1: catalog.NewItem(1, "radiology"),
		2: catalog.NewItem(2, "surgery"),
	}}
	svc := NewService(newFakeRepo(), res)

	v, err := svc.Create(context.Background(), Input{
		FirstName:    "  Linda ",
		LastName:     "Douglas",
		SpecialtyIDs: []int64{2, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.ID)
	assert.Equal(t, "Linda", v.FirstName)
	assert.Equal(t, 2, v.NrOfSpecialties())
	assert.Equal(t, "radiology", v.SpecialtiesByName()[0].Name)
	assert.ElementsMatch(t, []int64{1, 2}, v.SpecialtyIDs())
}

func TestService_CreateValidation(t *testing.T) {
	res := fakeResolver{items: map[int64]catalog.Item{}}
	svc := NewService(newFakeRepo(), res)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{FirstName: "", LastName: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, Input{FirstName: "A", LastName: "abcdefghijabcdefghijabcdefghijk"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, Input{FirstName: "A", LastName: "B", SpecialtyIDs: []int64{99}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateDelete_NotFound(t *testing.T) {
	svc := NewService(fixedVets(), nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, 42, Input{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := svc.Update(ctx, 2, Input{FirstName: "Sharon", LastName: "Jenkins-Smith"})
	require.NoError(t, err)
	assert.Equal(t, "Jenkins-Smith", v.LastName)

	assert.ErrorIs(t, svc.Delete(ctx, 42), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, 1))

	got, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}
