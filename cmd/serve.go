package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API over the latest snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		mux.HandleFunc("GET /api/leads", func(w http.ResponseWriter, r *http.Request) {
			filter, err := parseFilter(r)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}

			leads, err := env.Store.ListLeads(r.Context(), filter)
			if err != nil {
				zap.L().Error("list leads failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
				return
			}
			if leads == nil {
				leads = []model.Lead{}
			}
			writeJSON(w, http.StatusOK, leads)
		})

		mux.HandleFunc("GET /api/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
			lead, err := env.Store.GetLead(r.Context(), r.PathValue("id"))
			if err != nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead not found"})
				return
			}
			writeJSON(w, http.StatusOK, lead)
		})

		mux.HandleFunc("GET /api/summary", func(w http.ResponseWriter, r *http.Request) {
			summary, err := env.Store.Summarize(r.Context())
			if err != nil {
				zap.L().Error("summarize failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
				return
			}
			writeJSON(w, http.StatusOK, summary)
		})

		mux.HandleFunc("POST /api/score", func(w http.ResponseWriter, r *http.Request) {
			var rec model.RawRecord
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if rec.CompanyName == "" && rec.ProjectName == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "company_name or project_name is required"})
				return
			}

			lead := env.Pipeline.Enrich(rec)
			writeJSON(w, http.StatusOK, lead)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

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

func parseFilter(r *http.Request) (store.Filter, error) {
	var filter store.Filter
	q := r.URL.Query()

	if v := q.Get("tier"); v != "" {
		tier, err := strconv.Atoi(v)
		if err != nil || tier < 1 || tier > 4 {
			return filter, fmt.Errorf("tier must be 1-4")
		}
		filter.Tier = model.Tier(tier)
	}
	if v := q.Get("min_score"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, fmt.Errorf("min_score must be numeric")
		}
		filter.MinScore = score
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filter, fmt.Errorf("limit must be a non-negative integer")
		}
		filter.Limit = limit
	}
	filter.State = q.Get("state")

	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
