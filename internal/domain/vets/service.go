package vets

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/entity"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vet not found")
)

const maxNameLen = 30

// SpecialtyResolver evita depender del service de catalog completo.
type SpecialtyResolver interface {
	Resolve(ctx context.Context, kind catalog.Kind, ids []int64) ([]catalog.Item, error)
}

type Service struct {
	repo        Repository
	specialties SpecialtyResolver
}

// NewService: specialties puede ser nil si sólo se usan lecturas (p.ej. en tests).
func NewService(repo Repository, specialties SpecialtyResolver) *Service {
	return &Service{
		repo:        repo,
		specialties: specialties,
	}
}

type Input struct {
	FirstName    string
	LastName     string
	SpecialtyIDs []int64
}

func (s *Service) ListAllVets(ctx context.Context) ([]Vet, error) {
	return s.repo.ListAll(ctx)
}

// FindByName busca por apellido exacto. nil si no hay match.
func (s *Service) FindByName(ctx context.Context, lastName string) (*Vet, error) {
	if lastName == "" {
		return nil, nil
	}
	return s.repo.FindByLastName(ctx, lastName)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Vet, error) {
	if id <= 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Vet, error) {
	v, err := s.build(ctx, 0, in)
	if err != nil {
		return Vet{}, err
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		return Vet{}, err
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Vet, error) {
	if id <= 0 {
		return Vet{}, ErrInvalidInput
	}
	v, err := s.build(ctx, id, in)
	if err != nil {
		return Vet{}, err
	}

	ok, err := s.repo.Update(ctx, v)
	if err != nil {
		return Vet{}, err
	}
	if !ok {
		return Vet{}, ErrNotFound
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) build(ctx context.Context, id int64, in Input) (Vet, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if !validName(first) || !validName(last) {
		return Vet{}, ErrInvalidInput
	}

	var specs []catalog.Specialty
	if len(in.SpecialtyIDs) > 0 {
		if s.specialties == nil {
			return Vet{}, ErrInvalidInput
		}
		resolved, err := s.specialties.Resolve(ctx, catalog.KindSpecialty, in.SpecialtyIDs)
		if err != nil {
			if errors.Is(err, catalog.ErrInvalidInput) {
				return Vet{}, ErrInvalidInput
			}
			return Vet{}, err
		}
		specs = resolved
	}

	return Vet{
		Person: entity.Person{
			BaseEntity: entity.BaseEntity{ID: id},
			FirstName:  first,
			LastName:   last,
		},
		Specialties: specs,
	}, nil
}

func validName(s string) bool {
	return s != "" && utf8.RuneCountInString(s) <= maxNameLen
}
