package visits

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("visit not found")
	ErrPetNotFound  = errors.New("pet not found")
)

const maxDescriptionLen = 255

// PetLookup permite validar que la mascota pertenece al owner sin importar
// el paquete owners (owners ya depende de visits).
type PetLookup interface {
	PetOfOwner(ctx context.Context, ownerID, petID int64) (bool, error)
}

type Service struct {
	repo Repository
	pets PetLookup
	now  func() time.Time
}

func NewService(repo Repository, pets PetLookup) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

// Input: Date en cero significa "hoy".
type Input struct {
	Date        time.Time
	Description string
}

// Build valida el input y arma la visita (sin id ni pet). La usan también
// otros módulos al crear visitas anidadas.
func Build(in Input, now time.Time) (Visit, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" || utf8.RuneCountInString(desc) > maxDescriptionLen {
		return Visit{}, ErrInvalidInput
	}

	date := in.Date
	if date.IsZero() {
		date = now
	}
	return Visit{Date: Day(date), Description: desc}, nil
}

func (s *Service) ListByPet(ctx context.Context, ownerID, petID int64) ([]Visit, error) {
	if err := s.checkPet(ctx, ownerID, petID); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) Add(ctx context.Context, ownerID, petID int64, in Input) (Visit, error) {
	if err := s.checkPet(ctx, ownerID, petID); err != nil {
		return Visit{}, err
	}

	v, err := Build(in, s.now())
	if err != nil {
		return Visit{}, err
	}
	v.PetID = petID

	if err := s.repo.Create(ctx, &v); err != nil {
		return Visit{}, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, petID, visitID int64) error {
	if err := s.checkPet(ctx, ownerID, petID); err != nil {
		return err
	}

	v, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return err
	}
	if v == nil || v.PetID != petID {
		return ErrNotFound
	}

	ok, err := s.repo.Delete(ctx, visitID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) checkPet(ctx context.Context, ownerID, petID int64) error {
	if ownerID <= 0 || petID <= 0 {
		return ErrInvalidInput
	}
	ok, err := s.pets.PetOfOwner(ctx, ownerID, petID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPetNotFound
	}
	return nil
}
