package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cs_market/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/purchases", handler(s.getV1Purchases))
		r.Get("/sellers/{steamID}", handler(s.getV1Seller))

		r.Route("/items", func(r chi.Router) {
			r.Post("/", handler(s.postV1Items))
			r.Get("/price", handler(s.getV1ItemPrice))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
