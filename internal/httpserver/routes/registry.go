package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/launchpad/internal/httpserver/deps"
	"github.com/MrSnakeDoc/launchpad/internal/httpserver/mw"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var registry []entry

// Register a registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// Called once from server.New()
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		sub := r.With(e.mws...) // apply per-route middlewares
		e.reg(sub, d)
	}
}

// access limits a route to allowed clients, Host names and origins.
func access(d deps.Deps) []Middleware {
	return []Middleware{
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RejectForeignOrigin(d.AllowedHosts, d.Logger),
	}
}

// guarded is access plus request serialisation, for routes that touch the
// profile files.
func guarded(d deps.Deps) []Middleware {
	return append(access(d), mw.Serialize(d.Lock))
}

// launches throttles routes that spawn a browser.
func launches(d deps.Deps) Middleware {
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.LaunchBurst,
		RefillPerIPPerMin: d.LaunchPerMin,
		MaxEntries:        1024,
		TrustProxy:        d.TrustProxy,
		Log:               d.Logger,
	})
}
