package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/visits"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /owners y /owners/{ownerID}/pets. petRoutes se montan
// bajo /owners/{ownerID}/pets/{petID} (p.ej. visitas).
func RegisterRoutes(r chi.Router, svc *Service, guard func(http.Handler) http.Handler, petRoutes ...func(chi.Router)) {
	r.Route("/owners", func(or chi.Router) {
		or.Get("/", listOwnersHandler(svc))
		or.Get("/{ownerID}", getOwnerHandler(svc))
		or.Get("/{ownerID}/pets/{petID}", getPetHandler(svc))

		or.Group(func(wr chi.Router) {
			if guard != nil {
				wr.Use(guard)
			}
			wr.Post("/", createOwnerHandler(svc))
			wr.Put("/{ownerID}", updateOwnerHandler(svc))
			wr.Delete("/{ownerID}", deleteOwnerHandler(svc))

			wr.Post("/{ownerID}/pets", createPetHandler(svc))
			wr.Put("/{ownerID}/pets/{petID}", updatePetHandler(svc))
			wr.Delete("/{ownerID}/pets/{petID}", deletePetHandler(svc))
		})

		if len(petRoutes) > 0 {
			or.Route("/{ownerID}/pets/{petID}/", func(pr chi.Router) {
				for _, mount := range petRoutes {
					mount(pr)
				}
			})
		}
	})
}

type petRequest struct {
	Name      string           `json:"name"`
	BirthDate string           `json:"birthDate"`
	Type      typeRef          `json:"type"`
	Visits    []visits.Request `json:"visits,omitempty"`
}

type typeRef struct {
	ID int64 `json:"id"`
}

type ownerRequest struct {
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Address   string       `json:"address"`
	City      string       `json:"city"`
	Telephone string       `json:"telephone"`
	Pets      []petRequest `json:"pets,omitempty"`
}

type petResponse struct {
	ID        int64                `json:"id"`
	Name      string               `json:"name"`
	BirthDate string               `json:"birthDate"`
	Type      catalog.ItemResponse `json:"type"`
	OwnerID   int64                `json:"ownerId"`
	Visits    []visits.Response    `json:"visits"`
}

type ownerResponse struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Address   string        `json:"address"`
	City      string        `json:"city"`
	Telephone string        `json:"telephone"`
	Pets      []petResponse `json:"pets"`
}

// listOwnersHandler godoc
// @Summary Listar owners
// @Description Ordenados por apellido, con sus mascotas y visitas.
// @Tags owners
// @Produce json
// @Success 200 {array} ownerResponse
// @Router /owners [get]
func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]ownerResponse, 0, len(items))
		for i := range items {
			out = append(out, toOwnerResponse(&items[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r, "ownerID")
		if !ok {
			http.Error(w, "invalid owner id", http.StatusBadRequest)
			return
		}

		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if o == nil {
			http.Error(w, "owner not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

// createOwnerHandler godoc
// @Summary Crear owner
// @Description Acepta mascotas y visitas anidadas; todo se persiste en una transacción.
// @Tags owners
// @Accept json
// @Produce json
// @Param body body ownerRequest true "Owner"
// @Success 201 {object} ownerResponse
// @Failure 400 {string} string "invalid input"
// @Failure 409 {string} string "duplicate pet"
// @Router /owners [post]
func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ownerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, err := req.toInput()
		if err != nil {
			http.Error(w, "dates must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		o, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toOwnerResponse(&o))
	}
}

func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r, "ownerID")
		if !ok {
			http.Error(w, "invalid owner id", http.StatusBadRequest)
			return
		}

		var req ownerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		req.Pets = nil
		in, _ := req.toInput()

		o, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, err)
			return
		}
		if o == nil {
			http.Error(w, "owner not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func deleteOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r, "ownerID")
		if !ok {
			http.Error(w, "invalid owner id", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, petID, ok := petParams(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		p, err := svc.GetPet(r.Context(), ownerID, petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if p == nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(*p))
	}
}

// createPetHandler godoc
// @Summary Agregar mascota a un owner
// @Tags owners
// @Accept json
// @Produce json
// @Param ownerID path int true "Owner ID"
// @Param body body petRequest true "Mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "owner not found"
// @Failure 409 {string} string "duplicate pet"
// @Router /owners/{ownerID}/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := parseID(r, "ownerID")
		if !ok {
			http.Error(w, "invalid owner id", http.StatusBadRequest)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, err := req.toInput()
		if err != nil {
			http.Error(w, "dates must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.AddPet(r.Context(), ownerID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, petID, ok := petParams(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		req.Visits = nil
		in, err := req.toInput()
		if err != nil {
			http.Error(w, "dates must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.UpdatePet(r.Context(), ownerID, petID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		if p == nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(*p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, petID, ok := petParams(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := svc.DeletePet(r.Context(), ownerID, petID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (req ownerRequest) toInput() (OwnerInput, error) {
	in := OwnerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		City:      req.City,
		Telephone: req.Telephone,
	}
	for _, pr := range req.Pets {
		pin, err := pr.toInput()
		if err != nil {
			return OwnerInput{}, err
		}
		in.Pets = append(in.Pets, pin)
	}
	return in, nil
}

func (req petRequest) toInput() (PetInput, error) {
	in := PetInput{Name: req.Name, TypeID: req.Type.ID}
	if req.BirthDate != "" {
		d, err := time.Parse(visits.DateLayout, req.BirthDate)
		if err != nil {
			return PetInput{}, err
		}
		in.BirthDate = d
	}
	for _, vr := range req.Visits {
		vin, err := vr.ToInput()
		if err != nil {
			return PetInput{}, err
		}
		in.Visits = append(in.Visits, vin)
	}
	return in, nil
}

func toOwnerResponse(o *Owner) ownerResponse {
	pets := o.Pets()
	out := ownerResponse{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Address:   o.Address,
		City:      o.City,
		Telephone: o.Telephone,
		Pets:      make([]petResponse, 0, len(pets)),
	}
	for _, p := range pets {
		out.Pets = append(out.Pets, toPetResponse(p))
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate.Format(visits.DateLayout),
		Type:      catalog.ItemResponse{ID: p.Type.ID, Name: p.Type.Name},
		OwnerID:   p.OwnerID,
		Visits:    visits.ToResponses(p.Visits()),
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrDuplicatePet):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "owner not found", http.StatusNotFound)
	case errors.Is(err, ErrPetNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func petParams(r *http.Request) (int64, int64, bool) {
	ownerID, ok := parseID(r, "ownerID")
	if !ok {
		return 0, 0, false
	}
	petID, ok := parseID(r, "petID")
	if !ok {
		return 0, 0, false
	}
	return ownerID, petID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
