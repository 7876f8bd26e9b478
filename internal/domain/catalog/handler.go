package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el CRUD de un tipo de lookup bajo path (p.ej. "/pettypes").
// guard envuelve las rutas de escritura (puede ser nil).
func RegisterRoutes(r chi.Router, path string, kind Kind, svc *Service, guard func(http.Handler) http.Handler) {
	r.Route(path, func(cr chi.Router) {
		cr.Get("/", listHandler(svc, kind))
		cr.Get("/{itemID}", getHandler(svc, kind))

		cr.Group(func(wr chi.Router) {
			if guard != nil {
				wr.Use(guard)
			}
			wr.Post("/", createHandler(svc, kind))
			wr.Put("/{itemID}", updateHandler(svc, kind))
			wr.Delete("/{itemID}", deleteHandler(svc, kind))
		})
	})
}

type itemRequest struct {
	Name string `json:"name"`
}

// ItemResponse representa un tipo de mascota o una especialidad.
type ItemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// listHandler godoc
// @Summary Listar tipos de mascota / especialidades
// @Tags catalog
// @Produce json
// @Success 200 {array} ItemResponse
// @Failure 500 {string} string "internal error"
// @Router /pettypes [get]
// @Router /specialties [get]
func listHandler(svc *Service, kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), kind)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, ToResponses(items))
	}
}

func getHandler(svc *Service, kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r, "itemID")
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		it, err := svc.GetByID(r.Context(), kind, id)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if it == nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(*it))
	}
}

func createHandler(svc *Service, kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req itemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		it, err := svc.Create(r.Context(), kind, req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(it))
	}
}

func updateHandler(svc *Service, kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r, "itemID")
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req itemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		it, err := svc.Rename(r.Context(), kind, id, req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(it))
	}
}

func deleteHandler(svc *Service, kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r, "itemID")
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), kind, id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToResponses la exportamos porque vets y owners embeben especialidades / tipos.
func ToResponses(items []Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toResponse(it))
	}
	return out
}

func toResponse(it Item) ItemResponse {
	return ItemResponse{ID: it.ID, Name: it.Name}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrInUse):
		http.Error(w, err.Error(), http.StatusConflict)
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
