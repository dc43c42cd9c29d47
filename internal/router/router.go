package router

import (
	"net/http"

	mem "pets-api/internal/adapters/storage/memory"
	_ "pets-api/internal/docs"
	"pets-api/internal/domain/pets"
	"pets-api/internal/middleware"
	"pets-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si es nil, usa el repo in-memory.
	Repo pets.Repository

	// Opcional: si es nil, no loguea.
	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	repo := opts.Repo
	if repo == nil {
		repo = mem.NewPetRepo()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	petsSvc := pets.NewService(repo)
	pets.RegisterRoutes(r, petsSvc, log)

	return r
}
