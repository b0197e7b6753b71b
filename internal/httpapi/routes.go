package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/chart"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/hub"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/ws"
)

type Deps struct {
	Dashboard Dashboard
	Hub       *hub.Hub
	Refresh   func() // optional, forwarded to websocket clients
	Chart     chart.Options
	Logger    *zap.Logger
}

func SetupRoutes(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Pages
	r.Get("/", Index(d.Dashboard, log))
	r.Get("/teamGoldDiff.png", Chart(d.Dashboard, d.Chart, log))

	// JSON
	r.Get("/api/dashboard", APIDashboard(d.Dashboard))
	r.Get("/api/history", APIHistory(d.Dashboard))

	r.Get("/healthz", Healthz)
	if d.Hub != nil {
		r.Get("/ws", ws.Handler(d.Hub, d.Refresh, log))
	}
	return r
}
