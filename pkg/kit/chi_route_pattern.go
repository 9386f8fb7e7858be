package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ChiRoutePattern labels a request by its matched chi pattern, e.g.
// "/api/garments/price/{price}". Unmatched requests share one label.
func ChiRoutePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if rp := rc.RoutePattern(); rp != "" {
			return rp
		}
	}
	return "unmatched"
}
