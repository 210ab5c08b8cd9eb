// Package http wires the chi router for the TaskMaster API.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rezkam/taskmaster/internal/http/handler"
	"github.com/rezkam/taskmaster/internal/http/middleware"
	"github.com/rezkam/taskmaster/internal/http/response"
)

// NewRouter builds the HTTP router. Auth endpoints are public; everything
// under /v1 otherwise requires a valid session token.
func NewRouter(srv *handler.Server, authenticator middleware.Authenticator) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", srv.SignUp)
			r.Post("/signin", srv.SignIn)
			r.Post("/signout", srv.SignOut)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(authenticator))

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", srv.ListTasks)
				r.Post("/", srv.CreateTask)
				r.Patch("/{id}", srv.UpdateTask)
				r.Delete("/{id}", srv.DeleteTask)
				r.Post("/{id}/toggle", srv.ToggleTask)
			})

			r.Route("/filters", func(r chi.Router) {
				r.Get("/", srv.GetFilters)
				r.Put("/", srv.PutFilters)
				r.Delete("/", srv.ResetFilters)
			})

			r.Get("/calendar", srv.Calendar)

			r.Route("/snapshot", func(r chi.Router) {
				r.Get("/", srv.ExportSnapshot)
				r.Post("/", srv.ImportSnapshot)
			})

			r.Route("/archives", func(r chi.Router) {
				r.Get("/", srv.ListArchives)
				r.Post("/", srv.CreateArchive)
				r.Post("/{name}/restore", srv.RestoreArchive)
			})
		})
	})

	return r
}
