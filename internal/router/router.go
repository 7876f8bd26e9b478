package router

import (
	"net/http"

	"petclinic/internal/adapters/storage/memory"
	"petclinic/internal/adapters/storage/sqlstore"
	"petclinic/internal/domain/catalog"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/vets"
	"petclinic/internal/domain/visits"
	"petclinic/internal/middleware"
	"petclinic/internal/platform/logger"
	"petclinic/internal/ports/auth"

	_ "petclinic/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Repos agrupa los repositorios de cada módulo. Memoria y SQL implementan los mismos.
type Repos struct {
	Catalog catalog.Repository
	Vets    vets.Repository
	Owners  owners.Repository
	Visits  visits.Repository
}

func MemoryRepos(s *memory.Store) Repos {
	return Repos{
		Catalog: s.Catalog(),
		Vets:    s.Vets(),
		Owners:  s.Owners(),
		Visits:  s.Visits(),
	}
}

func SQLRepos(s *sqlstore.Store) Repos {
	return Repos{
		Catalog: s.Catalog(),
		Vets:    s.Vets(),
		Owners:  s.Owners(),
		Visits:  s.Visits(),
	}
}

type Options struct {
	// Si Repos viene vacío se usa un store en memoria con los datos de ejemplo.
	Repos Repos

	Logger       logger.Logger
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// RequireAuth exige un Bearer válido en las rutas de escritura.
	RequireAuth bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	repos := opts.Repos
	if repos.Catalog == nil || repos.Vets == nil || repos.Owners == nil || repos.Visits == nil {
		repos = MemoryRepos(memory.NewSeededStore())
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var guard func(http.Handler) http.Handler
	if opts.RequireAuth {
		guard = middleware.RequireUser
	}

	// Services por módulo
	catalogSvc := catalog.NewService(repos.Catalog)
	vetsSvc := vets.NewService(repos.Vets, catalogSvc)
	ownersSvc := owners.NewService(repos.Owners, catalogSvc)
	visitsSvc := visits.NewService(repos.Visits, ownersSvc)

	// Rutas por módulo
	catalog.RegisterRoutes(r, "/pettypes", catalog.KindPetType, catalogSvc, guard)
	catalog.RegisterRoutes(r, "/specialties", catalog.KindSpecialty, catalogSvc, guard)
	vets.RegisterRoutes(r, vetsSvc, guard)
	owners.RegisterRoutes(r, ownersSvc, guard, func(pr chi.Router) {
		visits.RegisterRoutes(pr, visitsSvc, guard)
	})

	return r
}
