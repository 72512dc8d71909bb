package server

import (
	"aimtrainer/internal/config"
	"aimtrainer/internal/gamedata"
	"aimtrainer/internal/metrics"
	"aimtrainer/internal/rooms"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Run() error {
	appCfg := config.Load()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	roomStore := rooms.NewStore(context.Background(), rooms.Options{
		Game:          gamedata.ConfigFrom(appCfg),
		Settings:      appCfg.Settings,
		TTL:           appCfg.RoomTTL,
		SweepInterval: 5 * time.Minute,
		Metrics:       m,
	})

	srv := &Server{
		Rooms:     roomStore,
		Gatherer:  reg,
		StaticDir: appCfg.StaticDir,
	}

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, srv.Router())
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	r.HandleFunc("/rooms", s.handleCreateRoom).Methods(http.MethodPost)
	room := r.PathPrefix("/rooms/{code}").Subrouter()
	room.HandleFunc("", s.handleGetRoom).Methods(http.MethodGet)
	room.HandleFunc("", s.handleDeleteRoom).Methods(http.MethodDelete)
	room.HandleFunc("/result", s.handleResult).Methods(http.MethodGet)
	room.HandleFunc("/start", s.handleStart).Methods(http.MethodPost)
	room.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	room.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(s.StaticDir))))
	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" && r.URL.Path != "/metrics" {
			log.Printf("[HTTP] %s %s", r.Method, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}
