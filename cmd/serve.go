package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/advisory-cli/internal/config"
	"github.com/sells-group/advisory-cli/internal/dashboard"
	"github.com/sells-group/advisory-cli/internal/model"
	"github.com/sells-group/advisory-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		router := newRouter(dashboard.NewService(st, cat), st, cat, cfg.Server)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(svc *dashboard.Service, st store.Store, cat *model.Catalog, serverCfg config.ServerConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: serverCfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimit(serverCfg.RateLimit, serverCfg.Burst))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/clients", func(w http.ResponseWriter, req *http.Request) {
			clients, err := st.ListClients(req.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			if clients == nil {
				clients = []model.Client{}
			}
			writeJSON(w, http.StatusOK, clients)
		})

		r.Post("/clients", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Name == "" {
				writeError(w, http.StatusBadRequest, eris.New("name is required"))
				return
			}
			client, err := st.CreateClient(req.Context(), body.Name, body.Email)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusCreated, client)
		})

		r.Get("/clients/{id}/summary", func(w http.ResponseWriter, req *http.Request) {
			summary, err := svc.Summary(req.Context(), chi.URLParam(req, "id"))
			if err != nil {
				writeError(w, http.StatusNotFound, err)
				return
			}
			writeJSON(w, http.StatusOK, summary)
		})

		r.Get("/clients/{id}/progress", func(w http.ResponseWriter, req *http.Request) {
			p, err := svc.Progress(req.Context(), chi.URLParam(req, "id"))
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, p)
		})

		r.Put("/clients/{id}/records/{module}", func(w http.ResponseWriter, req *http.Request) {
			module := model.ModuleKey(chi.URLParam(req, "module"))
			if cat.Module(module) == nil {
				writeError(w, http.StatusBadRequest, eris.Errorf("unknown module %q", module))
				return
			}
			data, err := io.ReadAll(req.Body)
			if err != nil || !json.Valid(data) {
				writeError(w, http.StatusBadRequest, eris.New("body must be a JSON document"))
				return
			}
			rec, err := st.UpsertRecord(req.Context(), chi.URLParam(req, "id"), module, data, true)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, rec)
		})
	})

	return r
}

// rateLimit applies a server-wide token bucket; zero rps disables limiting.
func rateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, eris.New("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	zap.L().Warn("request failed", zap.Int("status", status), zap.Error(err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
