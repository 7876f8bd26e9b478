package vets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"petclinic/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /vets. guard envuelve las rutas de escritura (puede ser nil).
func RegisterRoutes(r chi.Router, svc *Service, guard func(http.Handler) http.Handler) {
	r.Route("/vets", func(vr chi.Router) {
		vr.Get("/", listVetsHandler(svc))
		vr.Get("/name/{lastName}", findVetByNameHandler(svc))
		vr.Get("/{vetID}", getVetHandler(svc))

		vr.Group(func(wr chi.Router) {
			if guard != nil {
				wr.Use(guard)
			}
			wr.Post("/", createVetHandler(svc))
			wr.Put("/{vetID}", updateVetHandler(svc))
			wr.Delete("/{vetID}", deleteVetHandler(svc))
		})
	})
}

type specialtyRef struct {
	ID int64 `json:"id"`
}

// vetRequest es el cuerpo para crear o reemplazar un veterinario.
type vetRequest struct {
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Specialties []specialtyRef `json:"specialties"`
}

// vetResponse es la representación JSON de un veterinario.
type vetResponse struct {
	ID              int64                  `json:"id"`
	FirstName       string                 `json:"firstName"`
	LastName        string                 `json:"lastName"`
	NrOfSpecialties int                    `json:"nrOfSpecialties"`
	Specialties     []catalog.ItemResponse `json:"specialties"`
}

// listVetsHandler godoc
// @Summary Listar veterinarios
// @Description Devuelve todos los veterinarios ordenados por id, con sus especialidades.
// @Tags vets
// @Produce json
// @Success 200 {array} vetResponse
// @Failure 500 {string} string "internal error"
// @Router /vets [get]
func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAllVets(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// findVetByNameHandler godoc
// @Summary Buscar veterinario por apellido
// @Description Match exacto y case-sensitive. Si no existe responde 200 con cuerpo `null`.
// @Tags vets
// @Produce json
// @Param lastName path string true "Apellido exacto"
// @Success 200 {object} vetResponse
// @Failure 500 {string} string "internal error"
// @Router /vets/name/{lastName} [get]
func findVetByNameHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.FindByName(r.Context(), chi.URLParam(r, "lastName"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		var out *vetResponse
		if v != nil {
			resp := toVetResponse(*v)
			out = &resp
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r, "vetID")
		if !ok {
			http.Error(w, "invalid vet id", http.StatusBadRequest)
			return
		}

		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if v == nil {
			http.Error(w, "vet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toVetResponse(*v))
	}
}

func createVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toVetResponse(v))
	}
}

func updateVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r, "vetID")
		if !ok {
			http.Error(w, "invalid vet id", http.StatusBadRequest)
			return
		}

		var req vetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toVetResponse(v))
	}
}

func deleteVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r, "vetID")
		if !ok {
			http.Error(w, "invalid vet id", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (req vetRequest) toInput() Input {
	ids := make([]int64, 0, len(req.Specialties))
	for _, s := range req.Specialties {
		ids = append(ids, s.ID)
	}
	return Input{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		SpecialtyIDs: ids,
	}
}

func toVetResponse(v Vet) vetResponse {
	return vetResponse{
		ID:              v.ID,
		FirstName:       v.FirstName,
		LastName:        v.LastName,
		NrOfSpecialties: v.NrOfSpecialties(),
		Specialties:     catalog.ToResponses(v.SpecialtiesByName()),
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "vet not found", http.StatusNotFound)
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

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
