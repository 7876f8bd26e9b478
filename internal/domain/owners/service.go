package owners

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/entity"
	"petclinic/internal/domain/visits"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("owner not found")
	ErrPetNotFound  = errors.New("pet not found")
	ErrDuplicatePet = errors.New("owner already has a pet with that name")
)

var telephoneRe = regexp.MustCompile(`^\d{1,10}$`)

const (
	maxPersonLen  = 30
	maxAddressLen = 255
	maxCityLen    = 80
	maxPetNameLen = 30
)

// TypeResolver resuelve tipos de mascota (implementado por catalog.Service).
type TypeResolver interface {
	Resolve(ctx context.Context, kind catalog.Kind, ids []int64) ([]catalog.Item, error)
}

type Service struct {
	repo  Repository
	types TypeResolver
	now   func() time.Time
}

func NewService(repo Repository, types TypeResolver) *Service {
	return &Service{
		repo:  repo,
		types: types,
		now:   time.Now,
	}
}

type OwnerInput struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string
	// Pets sólo se usa en Create.
	Pets []PetInput
}

type PetInput struct {
	Name      string
	BirthDate time.Time
	TypeID    int64
	// Visits sólo se usa al crear la mascota.
	Visits []visits.Input
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Owner, error) {
	if id <= 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id)
}

// Create valida el agregado completo antes de tocar el repo: si algo falla
// no se persiste nada.
func (s *Service) Create(ctx context.Context, in OwnerInput) (Owner, error) {
	o, err := buildOwner(0, in)
	if err != nil {
		return Owner{}, err
	}

	for _, pin := range in.Pets {
		if o.PetWithName(strings.TrimSpace(pin.Name)) != nil {
			return Owner{}, ErrDuplicatePet
		}
		p, err := s.buildPet(ctx, 0, pin)
		if err != nil {
			return Owner{}, err
		}
		o.AddPet(&p)
	}

	if err := s.repo.Create(ctx, &o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

// Update modifica sólo los datos del owner; las mascotas se gestionan aparte.
func (s *Service) Update(ctx context.Context, id int64, in OwnerInput) (*Owner, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	o, err := buildOwner(id, in)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.Update(ctx, o)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
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

func (s *Service) AddPet(ctx context.Context, ownerID int64, in PetInput) (Pet, error) {
	o, err := s.mustOwner(ctx, ownerID)
	if err != nil {
		return Pet{}, err
	}
	if o.PetWithName(strings.TrimSpace(in.Name)) != nil {
		return Pet{}, ErrDuplicatePet
	}

	p, err := s.buildPet(ctx, 0, in)
	if err != nil {
		return Pet{}, err
	}
	o.AddPet(&p)

	if err := s.repo.CreatePet(ctx, &p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// GetPet devuelve nil si la mascota no existe o es de otro owner.
func (s *Service) GetPet(ctx context.Context, ownerID, petID int64) (*Pet, error) {
	if ownerID <= 0 || petID <= 0 {
		return nil, nil
	}
	p, err := s.repo.GetPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OwnerID != ownerID {
		return nil, nil
	}
	return p, nil
}

// PetOfOwner cumple visits.PetLookup.
func (s *Service) PetOfOwner(ctx context.Context, ownerID, petID int64) (bool, error) {
	p, err := s.GetPet(ctx, ownerID, petID)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// UpdatePet reemplaza nombre, fecha y tipo. Las visitas no se tocan.
func (s *Service) UpdatePet(ctx context.Context, ownerID, petID int64, in PetInput) (*Pet, error) {
	o, err := s.mustOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cur, err := s.GetPet(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, ErrPetNotFound
	}
	if other := o.PetWithName(strings.TrimSpace(in.Name)); other != nil && other.ID != petID {
		return nil, ErrDuplicatePet
	}

	in.Visits = nil
	p, err := s.buildPet(ctx, petID, in)
	if err != nil {
		return nil, err
	}
	p.OwnerID = ownerID

	ok, err := s.repo.UpdatePet(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPetNotFound
	}
	return s.repo.GetPet(ctx, petID)
}

func (s *Service) DeletePet(ctx context.Context, ownerID, petID int64) error {
	cur, err := s.GetPet(ctx, ownerID, petID)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrPetNotFound
	}
	ok, err := s.repo.DeletePet(ctx, petID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPetNotFound
	}
	return nil
}

func (s *Service) mustOwner(ctx context.Context, id int64) (*Owner, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *Service) buildPet(ctx context.Context, id int64, in PetInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > maxPetNameLen {
		return Pet{}, fmt.Errorf("%w: pet name is required", ErrInvalidInput)
	}

	now := s.now()
	if in.BirthDate.IsZero() || visits.Day(in.BirthDate).After(visits.Day(now)) {
		return Pet{}, fmt.Errorf("%w: birthDate is required and cannot be in the future", ErrInvalidInput)
	}
	if in.TypeID <= 0 {
		return Pet{}, fmt.Errorf("%w: pet type is required", ErrInvalidInput)
	}

	types, err := s.types.Resolve(ctx, catalog.KindPetType, []int64{in.TypeID})
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			return Pet{}, fmt.Errorf("%w: unknown pet type", ErrInvalidInput)
		}
		return Pet{}, err
	}

	p := Pet{
		NamedEntity: entity.NamedEntity{BaseEntity: entity.BaseEntity{ID: id}, Name: name},
		BirthDate:   visits.Day(in.BirthDate),
		Type:        types[0],
	}
	for _, vin := range in.Visits {
		v, err := visits.Build(vin, now)
		if err != nil {
			return Pet{}, fmt.Errorf("%w: invalid visit", ErrInvalidInput)
		}
		p.AddVisit(&v)
	}
	return p, nil
}

func buildOwner(id int64, in OwnerInput) (Owner, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	addr := strings.TrimSpace(in.Address)
	city := strings.TrimSpace(in.City)
	tel := strings.TrimSpace(in.Telephone)

	switch {
	case !within(first, maxPersonLen), !within(last, maxPersonLen):
		return Owner{}, fmt.Errorf("%w: firstName and lastName are required", ErrInvalidInput)
	case !within(addr, maxAddressLen), !within(city, maxCityLen):
		return Owner{}, fmt.Errorf("%w: address and city are required", ErrInvalidInput)
	case !telephoneRe.MatchString(tel):
		return Owner{}, fmt.Errorf("%w: telephone must be up to 10 digits", ErrInvalidInput)
	}

	return Owner{
		Person: entity.Person{
			BaseEntity: entity.BaseEntity{ID: id},
			FirstName:  first,
			LastName:   last,
		},
		Address:   addr,
		City:      city,
		Telephone: tel,
	}, nil
}

func within(s string, limit int) bool {
	return s != "" && utf8.RuneCountInString(s) <= limit
}
