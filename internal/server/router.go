package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	authcontroller "kingflex/internal/auth/controller"
	authmiddleware "kingflex/internal/auth/middleware"
	ordercontroller "kingflex/internal/order/controller"
	productcontroller "kingflex/internal/product/controller"
)

func NewRouter(
	authCtrl *authcontroller.AuthController,
	orderCtrl *ordercontroller.OrderController,
	productCtrl *productcontroller.ProductController,
	authMw *authmiddleware.Middleware,
	frontendURL string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authCtrl.Register)
		r.Post("/register-admin", authCtrl.RegisterAdmin)
		r.Post("/login", authCtrl.Login)
		r.Post("/logout", authCtrl.Logout)
		r.Post("/send-verification-email", authCtrl.SendVerificationEmail)
		r.Post("/verify-email", authCtrl.VerifyEmail)
		r.Post("/check-verification-status", authCtrl.CheckVerificationStatus)
		r.Post("/request-password-reset", authCtrl.RequestPasswordReset)
		r.Post("/verify-reset-code", authCtrl.VerifyResetCode)
		r.Post("/reset-password", authCtrl.ResetPassword)

		r.With(authMw.RequireAuth).Get("/me", authCtrl.Me)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.With(authMw.OptionalAuth).Post("/", orderCtrl.Submit)
		r.Get("/guest-order", orderCtrl.GuestOrder)

		r.Group(func(r chi.Router) {
			r.Use(authMw.RequireAuth)
			r.Get("/my-orders", orderCtrl.MyOrders)
			r.Get("/{orderId}", orderCtrl.GetByID)
			r.Patch("/{orderId}/status", orderCtrl.UpdateStatus)
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productCtrl.List)

		r.Group(func(r chi.Router) {
			r.Use(authMw.RequireAdmin)
			r.Post("/", productCtrl.Create)
			r.Put("/{id}", productCtrl.Update)
			r.Delete("/{id}", productCtrl.Delete)
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
