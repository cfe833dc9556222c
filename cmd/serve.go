package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/chat"
	"github.com/sells-group/prospect-cli/internal/leads"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/store"
	"github.com/sells-group/prospect-cli/pkg/anthropic"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		env := &serveEnv{
			store:       s,
			rankOptions: rankOptions(),
			maxTokens:   cfg.Anthropic.MaxTokens,
			model:       cfg.Anthropic.Model,
		}

		if cfg.Anthropic.Key != "" {
			env.ai = anthropic.NewClient(cfg.Anthropic.Key, cfg.Anthropic.Model)
			env.poller = chat.NewHealthPoller(env.ai, 30*time.Second)
			go env.poller.Run(ctx)
		} else {
			zap.L().Warn("anthropic key not set, chat endpoints disabled")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newServeMux(env),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// serveEnv bundles the dependencies the handlers need.
type serveEnv struct {
	store       store.Store
	ai          anthropic.Client
	poller      *chat.HealthPoller
	rankOptions leads.Options
	model       string
	maxTokens   int64
}

func newServeMux(env *serveEnv) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", env.handleHealth)
		r.Get("/institutions", env.handleInstitutions)
		r.Get("/institutions/{id}/analysis", env.handleAnalysis)
		r.Put("/institutions/{id}/crm", env.handleUpdateCRM)
		r.Get("/leads", env.handleLeads)
		r.Post("/chat", env.handleChat)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// institutions loads the snapshot with overlays applied.
func (env *serveEnv) institutions(ctx context.Context) ([]model.Institution, error) {
	insts, err := env.store.LoadInstitutions(ctx)
	if err != nil {
		return nil, err
	}
	overlays, err := env.store.LoadOverlays(ctx)
	if err != nil {
		return nil, err
	}
	return store.Merge(insts, overlays), nil
}

func (env *serveEnv) handleHealth(w http.ResponseWriter, r *http.Request) {
	ai := string(chat.StateUnknown)
	if env.poller != nil {
		ai = string(env.poller.State())
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"ai":     ai,
	})
}

func (env *serveEnv) handleInstitutions(w http.ResponseWriter, r *http.Request) {
	insts, err := env.institutions(r.Context())
	if err != nil {
		zap.L().Error("list institutions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "load institutions")
		return
	}
	writeJSON(w, http.StatusOK, insts)
}

func (env *serveEnv) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	insts, err := env.institutions(r.Context())
	if err != nil {
		zap.L().Error("analysis: load institutions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "load institutions")
		return
	}

	inst := findInstitution(insts, id)
	if inst == nil {
		writeError(w, http.StatusNotFound, "institution not found")
		return
	}
	writeJSON(w, http.StatusOK, leads.Analyze(inst, insts, env.rankOptions))
}

func (env *serveEnv) handleUpdateCRM(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var overlay model.CRMOverlay
	if err := json.NewDecoder(r.Body).Decode(&overlay); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	overlay.InstitutionID = id

	if err := env.store.SaveOverlay(r.Context(), id, overlay); err != nil {
		zap.L().Error("save overlay", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "save overlay")
		return
	}
	writeJSON(w, http.StatusOK, overlay)
}

func (env *serveEnv) handleLeads(w http.ResponseWriter, r *http.Request) {
	limit := cfg.Leads.DefaultLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		if _, err := fmt.Sscanf(q, "%d", &limit); err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	insts, err := env.institutions(r.Context())
	if err != nil {
		zap.L().Error("leads: load institutions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "load institutions")
		return
	}
	writeJSON(w, http.StatusOK, leads.Rank(insts, limit, env.rankOptions))
}

// chatRequest is the POST /api/chat body.
type chatRequest struct {
	InstitutionID string `json:"institution_id"`
	Question      string `json:"question"`
}

// handleChat streams the assistant's answer as server-sent events. Each text
// delta arrives as a data event; the stream ends with event done, or event
// error after whatever partial output was delivered.
func (env *serveEnv) handleChat(w http.ResponseWriter, r *http.Request) {
	if env.ai == nil {
		writeError(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	var analysis *model.Analysis
	if req.InstitutionID != "" {
		insts, err := env.institutions(r.Context())
		if err != nil {
			zap.L().Error("chat: load institutions", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "load institutions")
			return
		}
		inst := findInstitution(insts, req.InstitutionID)
		if inst == nil {
			writeError(w, http.StatusNotFound, "institution not found")
			return
		}
		analysis = leads.Analyze(inst, insts, env.rankOptions)
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	chatID := uuid.NewString()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	resp, err := env.ai.StreamMessage(r.Context(), anthropic.MessageRequest{
		Model:     env.model,
		MaxTokens: env.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(chat.SystemPrompt),
		Messages:  chat.BuildPayload(req.Question, analysis),
	}, func(delta string) {
		data, _ := json.Marshal(map[string]string{"text": delta})
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	})
	if err != nil {
		zap.L().Error("chat: stream failed", zap.String("chat_id", chatID), zap.Error(err))
		data, _ := json.Marshal(map[string]string{"error": "stream interrupted"})
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
		flusher.Flush()
		return
	}

	resp.Usage.LogCost(env.model, "chat")
	data, _ := json.Marshal(map[string]string{"id": chatID})
	fmt.Fprintf(w, "event: done\ndata: %s\n\n", data)
	flusher.Flush()
}
