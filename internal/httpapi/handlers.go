package httpapi

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/chart"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/ddragon"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/history"
	"github.com/DoyleJ11/lol-gold-dashboard/internal/session"
)

// Dashboard is the part of session.Session the handlers use.
type Dashboard interface {
	Poll(ctx context.Context) session.Result
	History() *history.Track
	Inverted() bool
}

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"splash":  ddragon.SplashURL,
	"minutes": clock,
}

var pages = map[session.State]*template.Template{
	session.StateLive:         mustPage("main.html"),
	session.StateStale:        mustPage("main.html"),
	session.StateLoading:      mustPage("loading.html"),
	session.StateNotConnected: mustPage("error.html"),
}

func mustPage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

// clock renders fractional minutes as m:ss.
func clock(minutes float64) string {
	secs := int(math.Round(minutes * 60))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

type pageData struct {
	View  *session.View
	Stale bool
}

func Index(d Dashboard, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := d.Poll(r.Context())

		tmpl, ok := pages[res.State]
		if !ok {
			http.Error(w, "unknown dashboard state", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		data := pageData{View: res.View, Stale: res.State == session.StateStale}
		if err := tmpl.Execute(&buf, data); err != nil {
			log.Error("failed to render page", zap.String("state", string(res.State)), zap.Error(err))
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = buf.WriteTo(w)
	}
}

// Chart draws the recorded differential. It never polls.
func Chart(d Dashboard, opts chart.Options, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		samples := d.History().Samples()

		var buf bytes.Buffer
		if err := chart.Render(&buf, samples, history.DomainOf(samples), d.Inverted(), opts); err != nil {
			log.Error("failed to render chart", zap.Int("samples", len(samples)), zap.Error(err))
			http.Error(w, "failed to render chart", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = buf.WriteTo(w)
	}
}

func APIDashboard(d Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Poll(r.Context()))
	}
}

func APIHistory(d Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		samples := d.History().Samples()
		writeJSON(w, http.StatusOK, struct {
			Samples  []history.Sample `json:"samples"`
			Domain   history.Domain   `json:"domain"`
			Inverted bool             `json:"inverted"`
		}{
			Samples:  samples,
			Domain:   history.DomainOf(samples),
			Inverted: d.Inverted(),
		})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
