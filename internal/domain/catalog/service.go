package catalog

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	// ErrInUse: el item está referenciado (mascotas o veterinarios).
	ErrInUse = errors.New("item in use")
)

const maxNameLen = 80

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, kind Kind) ([]Item, error) {
	if !kind.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, kind)
}

func (s *Service) GetByID(ctx context.Context, kind Kind, id int64) (*Item, error) {
	if !kind.Valid() || id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, kind, id)
}

func (s *Service) Create(ctx context.Context, kind Kind, name string) (Item, error) {
	name, err := normalizeName(kind, name)
	if err != nil {
		return Item{}, err
	}

	it := NewItem(0, name)
	if err := s.repo.Create(ctx, kind, &it); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) Rename(ctx context.Context, kind Kind, id int64, name string) (Item, error) {
	name, err := normalizeName(kind, name)
	if err != nil {
		return Item{}, err
	}
	if id <= 0 {
		return Item{}, ErrInvalidInput
	}

	it := NewItem(id, name)
	ok, err := s.repo.Update(ctx, kind, it)
	if err != nil {
		return Item{}, err
	}
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (s *Service) Delete(ctx context.Context, kind Kind, id int64) error {
	if !kind.Valid() || id <= 0 {
		return ErrInvalidInput
	}
	ok, err := s.repo.Delete(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Resolve carga todos los ids pedidos; si alguno no existe devuelve ErrInvalidInput.
// Lo usan vets (especialidades) y owners (tipo de mascota).
func (s *Service) Resolve(ctx context.Context, kind Kind, ids []int64) ([]Item, error) {
	out := make([]Item, 0, len(ids))
	seen := map[int64]struct{}{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		it, err := s.GetByID(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, ErrInvalidInput
		}
		out = append(out, *it)
	}
	SortByName(out)
	return out, nil
}

func normalizeName(kind Kind, name string) (string, error) {
	if !kind.Valid() {
		return "", ErrInvalidInput
	}
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return "", ErrInvalidInput
	}
	return name, nil
}
