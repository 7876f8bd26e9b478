package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID int64
	items  map[Kind]map[int64]Item
	inUse  map[int64]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items: map[Kind]map[int64]Item{KindPetType: {}, KindSpecialty: {}},
		inUse: map[int64]bool{},
	}
}

func (r *fakeRepo) List(_ context.Context, kind Kind) ([]Item, error) {
	out := make([]Item, 0, len(r.items[kind]))
	for _, it := range r.items[kind] {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, kind Kind, id int64) (*Item, error) {
	it, ok := r.items[kind][id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *fakeRepo) Create(_ context.Context, kind Kind, it *Item) error {
	r.nextID++
	it.ID = r.nextID
	r.items[kind][it.ID] = *it
	return nil
}

func (r *fakeRepo) Update(_ context.Context, kind Kind, it Item) (bool, error) {
	if _, ok := r.items[kind][it.ID]; !ok {
		return false, nil
	}
	r.items[kind][it.ID] = it
	return true, nil
}

func (r *fakeRepo) Delete(_ context.Context, kind Kind, id int64) (bool, error) {
	if _, ok := r.items[kind][id]; !ok {
		return false, nil
	}
	if r.inUse[id] {
		return false, ErrInUse
	}
	delete(r.items[kind], id)
	return true, nil
}

func TestService_CreateRenameDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cat, err := svc.Create(ctx, KindPetType, "  cat ")
	require.NoError(t, err)
	assert.Equal(t, "cat", cat.Name)
	assert.False(t, cat.IsNew())

	renamed, err := svc.Rename(ctx, KindPetType, cat.ID, "kitten")
	require.NoError(t, err)
	assert.Equal(t, "kitten", renamed.Name)

	_, err = svc.Rename(ctx, KindPetType, 999, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, KindPetType, cat.ID))
	assert.ErrorIs(t, svc.Delete(ctx, KindPetType, cat.ID), ErrNotFound)
}

func TestService_Validation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, KindPetType, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, KindSpecialty, strings.Repeat("x", maxNameLen+1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, Kind("owners"), "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(ctx, Kind(""))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_DeleteInUse(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	dog, err := svc.Create(ctx, KindPetType, "dog")
	require.NoError(t, err)
	repo.inUse[dog.ID] = true

	assert.ErrorIs(t, svc.Delete(ctx, KindPetType, dog.ID), ErrInUse)
}

func TestService_Resolve(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	surgery, _ := svc.Create(ctx, KindSpecialty, "surgery")
	radiology, _ := svc.Create(ctx, KindSpecialty, "radiology")

	got, err := svc.Resolve(ctx, KindSpecialty, []int64{surgery.ID, radiology.ID, surgery.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "radiology", got[0].Name)
	assert.Equal(t, "surgery", got[1].Name)

	_, err = svc.Resolve(ctx, KindSpecialty, []int64{surgery.ID, 77})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// el id existe pero es de otro kind
	_, err = svc.Resolve(ctx, KindPetType, []int64{surgery.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSortByName_TieBreaksOnID(t *testing.T) {
	items := []Item{NewItem(3, "b"), NewItem(2, "a"), NewItem(1, "b")}
	SortByName(items)
	assert.Equal(t, []int64{2, 1, 3}, []int64{items[0].ID, items[1].ID, items[2].ID})
}
