package wire

import (
	"classifieds-market/internal/adaptor"
	"classifieds-market/pkg/middleware"
	"classifieds-market/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, config *utils.Config, log *zap.Logger) {
	r.Post("/user/update", userHandler.UpdateInfo)

	// Profile picture
	r.Get("/user/profile", userHandler.Profile)
	r.Post("/user/profile/update", userHandler.UpdateProfile)

	// Saved items
	r.Get("/user/items", userHandler.SavedItems)
	r.Post("/user/items/update", userHandler.ToggleSavedItem)

	// ==================== PRIVILEGED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(config.App.APIKey, log))
		r.Get("/user/{user_id}", userHandler.GetInfo)
	})
}

func wirePurchase(r chi.Router, purchaseHandler *adaptor.PurchaseHandler) {
	r.Post("/user/purchase", purchaseHandler.Request)
	r.Get("/user/purchase/list", purchaseHandler.List)
	r.Post("/user/purchase/complete", purchaseHandler.Complete)
}

func wireAddress(r chi.Router, addressHandler *adaptor.AddressHandler) {
	r.Route("/user/address/{user_id}", func(r chi.Router) {
		r.Get("/", addressHandler.List)
		r.Put("/", addressHandler.Insert)
		r.Delete("/", addressHandler.Delete)
		r.Post("/", addressHandler.SetDefault)
	})
}
