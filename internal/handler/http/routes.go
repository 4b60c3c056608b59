package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withRecover)
	router.Use(middleware.StripSlashes)
	router.Use(withGZipRequest)
	router.Use(middleware.Compress(5))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	router.Get("/health", h.health)

	router.Route("/users", func(r chi.Router) {
		r.Post("/guest", h.createGuest)
		r.Post("/register", h.register)
		r.With(h.withLoginRateLimit).Post("/login", h.login)

		r.Get("/{user_id}", h.getUser)
		r.Get("/{user_id}/journey", h.journeySummary)

		// routes with authorization
		r.With(h.auth, h.sameUser).Put("/{user_id}", h.updateUser)
	})

	router.Route("/tasks", func(r chi.Router) {
		r.Get("/today/{user_id}", h.todayTask)
		r.Get("/status/{user_id}", h.taskStatus)
		r.Get("/user/{user_id}", h.listUserTasks)
		r.Post("/{task_id}/complete", h.completeTask)
		r.Get("/{task_id}", h.getTask)
	})

	router.Route("/reflections", func(r chi.Router) {
		r.Post("/", h.submitReflection)
		r.Post("/validate", h.validateReflection)
		r.Get("/user/{user_id}", h.listUserReflections)
		r.Get("/{reflection_id}", h.getReflection)
	})

	return router
}
