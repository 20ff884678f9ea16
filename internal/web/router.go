package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func router(webapp *WebApp) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", webapp.home())
	r.Post("/", webapp.zip())
	r.Get("/success", webapp.success())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.NotFound(webapp.notFoundHandler())

	return r
}
