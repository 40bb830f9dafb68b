package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/showsync/showsync/pkg/logger"
	"github.com/showsync/showsync/pkg/manager"
	"github.com/showsync/showsync/pkg/show"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    *error `json:"error,omitempty"`
	Response any    `json:"response"`
}

// RunHistory reads recorded run reports.
type RunHistory interface {
	GetRun(ctx context.Context, runID string) (*manager.RunReport, error)
	ListRuns(ctx context.Context, limit int) ([]*manager.RunReport, error)
}

// Server houses all dependencies for the show server to work such as loggers, the manager, configurations, etc.
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    manager.Manager
	scheduler  *manager.Scheduler
	history    RunHistory
}

// New creates a new show server
func New(logger *zap.SugaredLogger, manager manager.Manager, scheduler *manager.Scheduler, history RunHistory) Server {
	return Server{
		baseLogger: logger,
		manager:    manager,
		scheduler:  scheduler,
		history:    history,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: &err,
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/shows", s.ListShows()).Methods(http.MethodGet)
	v1.HandleFunc("/sync", s.TriggerSync()).Methods(http.MethodPost)
	v1.HandleFunc("/runs", s.ListRuns()).Methods(http.MethodGet)
	v1.HandleFunc("/runs/{id}", s.GetRun()).Methods(http.MethodGet)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsHandler,
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// ListShows lists the tracked shows, optionally filtered by state
func (s Server) ListShows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		var shows []show.Show
		var err error
		if state := r.URL.Query().Get("state"); state != "" {
			shows, err = s.manager.ListShowsByState(r.Context(), show.State(state))
		} else {
			shows, err = s.manager.ListShows(r.Context())
		}
		if err != nil {
			log.Error("failed to list shows", zap.Error(err))
			http.Error(w, "failed to list shows", http.StatusInternalServerError)
			return
		}

		resp := GenericResponse{
			Response: shows,
		}

		writeResponse(w, http.StatusOK, resp)
	}
}

type TriggerSyncResponse struct {
	Started bool `json:"started"`
}

// TriggerSync kicks off a reconciliation run unless one is already in flight
func (s Server) TriggerSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		started := s.scheduler.Trigger(context.WithoutCancel(r.Context()))
		if !started {
			log.Info("sync already running")
		}

		resp := GenericResponse{
			Response: TriggerSyncResponse{Started: started},
		}

		writeResponse(w, http.StatusAccepted, resp)
	}
}

// ListRuns lists the most recent reconciliation runs
func (s Server) ListRuns() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
				return
			}
			limit = parsed
		}

		runs, err := s.history.ListRuns(r.Context(), limit)
		if err != nil {
			log.Error("failed to list runs", zap.Error(err))
			http.Error(w, "failed to list runs", http.StatusInternalServerError)
			return
		}

		resp := GenericResponse{
			Response: runs,
		}

		writeResponse(w, http.StatusOK, resp)
	}
}

// GetRun fetches one run report by id
func (s Server) GetRun() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		id := mux.Vars(r)["id"]
		run, err := s.history.GetRun(r.Context(), id)
		if err != nil {
			log.Error("failed to get run", zap.String("id", id), zap.Error(err))
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}

		resp := GenericResponse{
			Response: run,
		}

		writeResponse(w, http.StatusOK, resp)
	}
}
