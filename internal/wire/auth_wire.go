package wire

import (
	"classifieds-market/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	r.Put("/user/signup", authHandler.Signup)
	r.Post("/user/check/id", authHandler.CheckID)
	r.Post("/user/check/email", authHandler.CheckEmail)
	r.Post("/user/login", authHandler.Login)
	r.Post("/user/logout", authHandler.Logout)
	r.Delete("/user/signout", authHandler.Signout)

	// Account recovery
	r.Post("/user/forgot/id", authHandler.ForgotID)
	r.Post("/user/forgot/password", authHandler.ForgotPassword)
	r.Post("/user/email/send", authHandler.SendEmail)
	r.Post("/user/email/verify", authHandler.VerifyEmail)
}
