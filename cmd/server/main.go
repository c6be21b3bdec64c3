package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vizkit/vizkit/backend-go/internal/auth"
	"github.com/vizkit/vizkit/backend-go/internal/board"
	"github.com/vizkit/vizkit/backend-go/internal/chart"
	"github.com/vizkit/vizkit/backend-go/internal/config"
	"github.com/vizkit/vizkit/backend-go/internal/db"
	"github.com/vizkit/vizkit/backend-go/internal/export"
	"github.com/vizkit/vizkit/backend-go/internal/importer"
	"github.com/vizkit/vizkit/backend-go/internal/live"
	mw "github.com/vizkit/vizkit/backend-go/internal/middleware"
	"github.com/vizkit/vizkit/backend-go/internal/store"
	"github.com/vizkit/vizkit/backend-go/internal/typeid"
)

// playgroundBoardID is a synthetic board anyone can join without an account.
// Its chart state lives only in the hub and is never persisted.
const playgroundBoardID = "board_playground"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool)

	authService := auth.NewService(st, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	boardService := board.NewService(st)
	boardHandler := board.NewHandler(boardService)

	// Chart loader for the live hub
	chartLoader := func(boardID string) (json.RawMessage, error) {
		if boardID == playgroundBoardID {
			return chart.SampleOptionsJSON(), nil
		}
		// Use a background context since this runs in the hub goroutine
		snap, err := st.GetLatestSnapshot(context.Background(), boardID)
		if err != nil {
			return nil, err
		}
		return snap.Options, nil
	}

	// Chart saver for the live hub
	chartSaver := func(boardID string, options json.RawMessage) error {
		if boardID == playgroundBoardID {
			return nil
		}
		_, err := st.SaveSnapshot(context.Background(), typeid.NewSnapshotID(), boardID, options)
		if err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		return nil
	}

	hub := live.NewHub(chartLoader, chartSaver)
	go hub.Run()

	exportHandler := export.NewHandler(cfg.ExportWidth, cfg.ExportHeight)
	importHandler := importer.NewHandler(cfg.MaxUploadBytes)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Export and import endpoints (public — used by playground and authenticated users)
	r.HandleFunc("/export/chart", exportHandler.ExportChart).Methods("POST", "OPTIONS")
	r.HandleFunc("/import/xlsx", importHandler.Upload).Methods("POST", "OPTIONS")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/me", authHandler.Me).Methods("GET")

	api.HandleFunc("/boards", boardHandler.List).Methods("GET")
	api.HandleFunc("/boards", boardHandler.Create).Methods("POST")
	api.HandleFunc("/boards/{boardId}", boardHandler.Get).Methods("GET")
	api.HandleFunc("/boards/{boardId}", boardHandler.Delete).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/invite", boardHandler.Invite).Methods("POST")
	api.HandleFunc("/boards/{boardId}/members", boardHandler.ListMembers).Methods("GET")
	api.HandleFunc("/boards/{boardId}/members/{userId}", boardHandler.RemoveMember).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/chart", boardHandler.GetChart).Methods("GET")
	api.HandleFunc("/boards/{boardId}/chart", boardHandler.SaveChart).Methods("PUT")

	// WebSocket endpoint
	r.HandleFunc("/ws/board/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, boardService, cfg.AllowedOrigins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to flush all dirty chart state
		slog.Info("saving chart state...")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *live.Hub, authSvc *auth.Service, boards *board.Service, allowedOrigins string) {
	vars := mux.Vars(r)
	boardID := vars["boardId"]

	var userID string
	var displayName string

	// The playground board allows anonymous access
	if boardID == playgroundBoardID {
		userID = "anon-" + uuid.New().String()[:8]
		displayName = "Anonymous"
	} else {
		// Auth via query param for real boards
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		var err error
		userID, err = authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		if err := boards.CheckMembership(r.Context(), boardID, userID); err != nil {
			http.Error(w, "not a board member", http.StatusForbidden)
			return
		}

		user, err := authSvc.GetUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "user not found", http.StatusInternalServerError)
			return
		}
		displayName = user.DisplayName
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(allowedOrigins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := live.NewClient(hub, conn, userID, displayName, boardID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes from the configured origins, which is what
// websocket.AcceptOptions matches against.
func originPatterns(allowedOrigins string) []string {
	var patterns []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		origin = strings.TrimPrefix(origin, "http://")
		origin = strings.TrimPrefix(origin, "https://")
		if origin != "" {
			patterns = append(patterns, origin)
		}
	}
	return patterns
}
