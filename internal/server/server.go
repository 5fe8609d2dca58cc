// Package server exposes a loaded environment over a read-only HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/caesium-lab/evacenv/internal/snapshot"
	"github.com/caesium-lab/evacenv/pkg/environment"
	"github.com/caesium-lab/evacenv/pkg/jsondoc"
	"github.com/caesium-lab/evacenv/pkg/validation"
)

// Server serves one environment, loaded before Start and never mutated
// afterwards, so handlers read it without locking.
type Server struct {
	env     *environment.Environment
	report  *validation.Report
	source  string
	port    int
	store   snapshot.Store
	metrics *metrics
	mux     *http.ServeMux
}

// New creates a server for env. The report is served as-is from
// /api/validation; store may be nil, which disables the snapshot endpoints.
func New(env *environment.Environment, report *validation.Report, source string, port int, store snapshot.Store) *Server {
	if report == nil {
		report = validation.ValidateEnvironment(env)
	}
	s := &Server{
		env:     env,
		report:  report,
		source:  source,
		port:    port,
		store:   store,
		metrics: newMetrics(env),
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.handle("GET /api/environment", s.handleEnvironment)
	s.handle("GET /api/domains/{id}", s.handleDomain)
	s.handle("GET /api/gateways/{id}", s.handleGateway)
	s.handle("GET /api/validation", s.handleValidation)
	s.handle("GET /api/reachability", s.handleReachability)
	s.handle("GET /api/contains", s.handleContains)
	s.handle("GET /api/snapshots", s.handleListSnapshots)
	s.handle("POST /api/snapshots", s.handleSaveSnapshot)
	s.mux.Handle("GET /metrics", s.metrics.handler())
	s.handle("GET /{$}", s.handleIndex)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.mux }

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.WithFields(log.Fields{
		"addr":     "http://localhost" + addr,
		"source":   s.source,
		"domains":  len(s.env.DomainIDs()),
		"gateways": len(s.env.GatewayIDs()),
	}).Info("evacenv server starting")

	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><title>evacenv</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>evacenv</h1>
<p>%s: %d domains, %d gateways</p>
<p>See <code>/api/environment</code>, <code>/api/validation</code> and <code>/metrics</code>.</p>
</div>
</body></html>`, s.source, len(s.env.DomainIDs()), len(s.env.GatewayIDs()))
}

func (s *Server) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	var (
		text string
		err  error
	)
	if pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty")); pretty {
		text, err = s.env.JSONPrettyPrinted("  ")
	} else {
		text, err = s.env.JSONSerialized()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, text)
}

func (s *Server) handleDomain(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, ok := s.env.Domain(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("domain %d not found", id))
		return
	}
	writeDocument(w, d.ToJSON())
}

func (s *Server) handleGateway(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	g, ok := s.env.Gateway(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("gateway %d not found", id))
		return
	}
	writeDocument(w, g.ToJSON())
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.report)
}

type reachabilityResponse struct {
	Hops        map[int32]int `json:"hops"`
	Unreachable []int32       `json:"unreachable"`
}

func (s *Server) handleReachability(w http.ResponseWriter, _ *http.Request) {
	unreachable := s.env.Unreachable()
	if unreachable == nil {
		unreachable = []int32{}
	}
	writeJSON(w, http.StatusOK, reachabilityResponse{
		Hops:        s.env.Reachability(),
		Unreachable: unreachable,
	})
}

// ProbeResult reports what occupies a point of a domain.
type ProbeResult struct {
	Domain    int32    `json:"domain"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Inside    bool     `json:"inside"`
	Walkable  bool     `json:"walkable"`
	Obstacles []string `json:"obstacles"`
	Accesses  []int32  `json:"accesses"`
}

func (s *Server) handleContains(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := parseID(q.Get("domain"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if err := errors.Join(errX, errY); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("x and y must be numbers: %w", err))
		return
	}
	d, ok := s.env.Domain(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("domain %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, Probe(d, x, y))
}

// Probe describes what occupies (x, y) in domain d.
func Probe(d *environment.Domain, x, y float64) ProbeResult {
	resp := ProbeResult{
		Domain:    d.ID(),
		X:         x,
		Y:         y,
		Inside:    x >= 0 && x <= d.Width() && y >= 0 && y <= d.Height(),
		Walkable:  d.IsWalkable(x, y),
		Obstacles: []string{},
		Accesses:  []int32{},
	}
	for _, o := range d.ObstaclesAt(x, y) {
		resp.Obstacles = append(resp.Obstacles, o.Name)
	}
	for _, a := range d.AccessesAt(x, y) {
		resp.Accesses = append(resp.Accesses, a.ID)
	}
	return resp
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, errors.New("snapshot storage is not configured"))
		return
	}
	infos, err := snapshot.List(r.Context(), s.store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if infos == nil {
		infos = []snapshot.Info{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, errors.New("snapshot storage is not configured"))
		return
	}
	key, err := snapshot.Save(r.Context(), s.store, s.env)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.snapshots.Inc()
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func parseID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return int32(id), nil
}

func writeDocument(w http.ResponseWriter, obj *jsondoc.Object) {
	b, err := jsondoc.Serialize(obj)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(append(b, '\n'))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
