package router

import (
	"database/sql"
	"net/http"

	mem "medtracker/internal/adapters/storage/memory"
	pg "medtracker/internal/adapters/storage/postgres"
	"medtracker/internal/domain/doselogs"
	"medtracker/internal/domain/medications"
	"medtracker/internal/domain/notes"
	"medtracker/internal/middleware"
	"medtracker/internal/ports/druginfo"

	_ "medtracker/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger zerolog.Logger

	// Opcional: sin fetcher, /medications/{id}/info responde 502.
	DrugInfo druginfo.Fetcher
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Recover(opts.Logger))
	r.Use(chimw.StripSlashes)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		medRepo  medications.Repository
		logRepo  doselogs.Repository
		noteRepo notes.Repository
	)

	if opts.DB != nil {
		medRepo = pg.NewMedicationsRepo(opts.DB)
		logRepo = pg.NewDoseLogsRepo(opts.DB)
		noteRepo = pg.NewNotesRepo(opts.DB)
	} else {
		store := mem.NewStore()
		medRepo = store.Medications()
		logRepo = store.DoseLogs()
		noteRepo = store.Notes()
	}

	// Services por módulo. doselogs va primero: medications lo usa como historial.
	logsSvc := doselogs.NewService(logRepo, medRepo)
	medsSvc := medications.NewService(medRepo, logsSvc, opts.DrugInfo)
	notesSvc := notes.NewService(noteRepo, medRepo)

	// Rutas por módulo
	medications.RegisterRoutes(r, medsSvc)
	doselogs.RegisterRoutes(r, logsSvc)
	notes.RegisterRoutes(r, notesSvc)

	return r
}
