package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willimj3/bella-document-review/internal/chat"
	"github.com/willimj3/bella-document-review/internal/extract"
	"github.com/willimj3/bella-document-review/internal/model"
	"github.com/willimj3/bella-document-review/pkg/anthropic"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := anthropic.NewClient(cfg.Anthropic.Key)
		api := &apiServer{
			protocol: extract.NewProtocol(client, cfg.Anthropic.Model, cfg.Extract),
			analyst:  chat.NewAnalyst(client, cfg.Anthropic.Model, cfg.Chat),
			hasKey:   cfg.Anthropic.Key != "",
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/", api.handleRoot)
		r.Get("/api/health", api.handleHealth)
		r.Post("/api/extract", api.handleExtract)
		r.Post("/api/chat", api.handleChat)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Bool("has_api_key", api.hasKey),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// apiServer holds the handlers' shared collaborators. The server itself is
// stateless: the caller supplies document text and chat context per request.
type apiServer struct {
	protocol *extract.Protocol
	analyst  *chat.Analyst
	hasKey   bool
}

func (s *apiServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "bella-api"})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "hasApiKey": s.hasKey})
}

// extractRequest is the wire shape of POST /api/extract.
type extractRequest struct {
	DocumentText string           `json:"documentText"`
	ColumnPrompt string           `json:"columnPrompt"`
	ColumnType   model.ColumnType `json:"columnType"`
	Options      []string         `json:"options,omitempty"`
}

func (s *apiServer) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.DocumentText == "" || req.ColumnPrompt == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		return
	}

	col := model.Column{
		Name:    req.ColumnPrompt,
		Prompt:  req.ColumnPrompt,
		Type:    req.ColumnType,
		Options: req.Options,
	}

	res, err := s.protocol.ExtractCell(r.Context(), req.DocumentText, col)
	if err != nil {
		writeExtractError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"value":      res.Value,
		"confidence": res.Confidence,
		"reasoning":  res.Reasoning,
		"quote":      res.Quote,
		"pageNumber": res.PageNumber,
	})
}

// writeExtractError maps the error taxonomy onto HTTP status codes: 429 with
// a retry hint, 401 for bad credentials, 400 for caller bugs, and 500 for
// everything else.
func writeExtractError(w http.ResponseWriter, err error) {
	var rl *anthropic.RateLimitedError
	if errors.As(err, &rl) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":      "Rate limited by Anthropic API. Please wait a moment and try again.",
			"retryAfter": int(rl.RetryAfter.Seconds()),
		})
		return
	}
	if anthropic.IsUnauthorized(err) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid API key"})
		return
	}
	var ve *extract.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		return
	}

	zap.L().Error("extraction failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// chatRequest is the wire shape of POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
	History []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"history"`
}

func (s *apiServer) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing message"})
		return
	}

	history := make([]model.ChatMessage, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, model.ChatMessage{Role: model.ChatRole(m.Role), Content: m.Content})
	}

	reply, err := s.analyst.Ask(r.Context(), req.Message, req.Context, history)
	if err != nil {
		zap.L().Error("chat failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
