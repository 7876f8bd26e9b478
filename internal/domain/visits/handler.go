package visits

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /visits relativo a una ruta de mascota que ya
// expone los parámetros {ownerID} y {petID}.
func RegisterRoutes(r chi.Router, svc *Service, guard func(http.Handler) http.Handler) {
	r.Get("/visits", listVisitsHandler(svc))

	r.Group(func(wr chi.Router) {
		if guard != nil {
			wr.Use(guard)
		}
		wr.Post("/visits", createVisitHandler(svc))
		wr.Delete("/visits/{visitID}", deleteVisitHandler(svc))
	})
}

// Request es el cuerpo de una visita; owners lo acepta también anidado.
type Request struct {
	// Date en formato YYYY-MM-DD; vacío = hoy.
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Response es la representación JSON de una visita.
type Response struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	PetID       int64  `json:"petId"`
}

// listVisitsHandler godoc
// @Summary Listar visitas de una mascota
// @Tags visits
// @Produce json
// @Param ownerID path int true "Owner ID"
// @Param petID path int true "Pet ID"
// @Success 200 {array} Response
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerID}/pets/{petID}/visits [get]
func listVisitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, petID, ok := petParams(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), ownerID, petID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponses(items))
	}
}

// createVisitHandler godoc
// @Summary Registrar visita
// @Tags visits
// @Accept json
// @Produce json
// @Param ownerID path int true "Owner ID"
// @Param petID path int true "Pet ID"
// @Param body body Request true "Visita"
// @Success 201 {object} Response
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerID}/pets/{petID}/visits [post]
func createVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, petID, ok := petParams(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, err := req.ToInput()
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		v, err := svc.Add(r.Context(), ownerID, petID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ToResponse(v))
	}
}

func deleteVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, petID, ok := petParams(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		visitID, err := strconv.ParseInt(chi.URLParam(r, "visitID"), 10, 64)
		if err != nil || visitID <= 0 {
			http.Error(w, "invalid visit id", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), ownerID, petID, visitID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (req Request) ToInput() (Input, error) {
	in := Input{Description: req.Description}
	if req.Date == "" {
		return in, nil
	}
	d, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return Input{}, err
	}
	in.Date = d
	return in, nil
}

func ToResponse(v Visit) Response {
	return Response{
		ID:          v.ID,
		Date:        v.Date.Format(DateLayout),
		Description: v.Description,
		PetID:       v.PetID,
	}
}

// ToResponses nunca devuelve nil para que el JSON sea [] y no null.
func ToResponses(vs []Visit) []Response {
	out := make([]Response, 0, len(vs))
	for _, v := range vs {
		out = append(out, ToResponse(v))
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPetNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "visit not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func petParams(r *http.Request) (int64, int64, bool) {
	ownerID, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
	if err != nil || ownerID <= 0 {
		return 0, 0, false
	}
	petID, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || petID <= 0 {
		return 0, 0, false
	}
	return ownerID, petID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
