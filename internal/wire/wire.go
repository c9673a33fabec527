// internal/wire/wire.go
package wire

import (
	"net/http"

	"classifieds-market/internal/adaptor"
	"classifieds-market/internal/data/repository"
	"classifieds-market/internal/data/session"
	"classifieds-market/internal/usecase"
	"classifieds-market/pkg/mailer"
	"classifieds-market/pkg/middleware"
	"classifieds-market/pkg/storage"
	"classifieds-market/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers on top of the given backends.
func Wiring(
	repo *repository.Repository,
	store session.Store,
	images storage.ImageStore,
	mail mailer.Mailer,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, store, images, mail, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, config, logger)
	wirePurchase(r, handler.Purchase)
	wireAddress(r, handler.Address)
	wireItem(r, handler.Item)
	wireItemImage(r, handler.ItemImage)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
