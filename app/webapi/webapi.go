// Package webapi provides the operator REST API: moderation status and
// per-chat policy management. Runs next to the telegram listener and shares
// the policy store with it.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/tg-guard/app/storage"
)

//go:generate moq --out mocks/policy.go --pkg mocks --with-resets --skip-ensure . Policy

// Policy provides per-chat moderation policy operations used by the API
type Policy interface {
	EnsureChat(ctx context.Context, chatID int64) error
	Strictness(ctx context.Context, chatID int64) (int, error)
	SetStrictness(ctx context.Context, chatID int64, level int) error
	Deleted(ctx context.Context, chatID int64) (int, error)
	DeletedTotal(ctx context.Context) (int, error)
	Policies(ctx context.Context) ([]storage.ChatPolicy, error)
}

// Server provides HTTP API for moderation status and policy management
type Server struct {
	Config
}

// Config defines server parameters
type Config struct {
	ListenAddr string // listen address, i.e. ":8080"
	Version    string // version to report in app-info headers
	AuthPasswd string // basic auth password for the "tg-guard" user, disabled if empty
	Policy     Policy // policy store
	Dbg        bool   // debug mode
}

// NewServer creates a new web API server
func NewServer(config Config) *Server {
	return &Server{Config: config}
}

// Run starts the server and blocks until the context is canceled
func (s *Server) Run(ctx context.Context) error {
	if s.AuthPasswd != "" {
		log.Printf("[INFO] basic auth enabled for web API")
	}

	srv := &http.Server{
		Addr:              s.ListenAddr,
		Handler:           s.routes(routegroup.New(http.NewServeMux())),
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown web API server: %v", err)
		}
	}()

	log.Printf("[INFO] start web API server on %s", s.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web API server failed: %w", err)
	}
	return nil
}

func (s *Server) routes(router *routegroup.Bundle) *routegroup.Bundle {
	router.Use(rest.Recoverer(lgr.Default()))
	router.Use(rest.Throttle(1000)) // limit the total number of concurrent requests
	router.Use(rest.AppInfo("tg-guard", "umputun", s.Version), rest.Ping)
	router.Use(tollbooth.HTTPMiddleware(tollbooth.NewLimiter(50, nil)))
	router.Use(rest.SizeLimit(64 * 1024))
	if s.AuthPasswd != "" {
		router.Use(rest.BasicAuthWithUserPasswd("tg-guard", s.AuthPasswd))
	}

	router.HandleFunc("GET /status", s.statusHandler)
	router.HandleFunc("GET /policy/{chatID}", s.getPolicyHandler)
	router.HandleFunc("PUT /policy/{chatID}", s.updatePolicyHandler)
	return router
}

// statusHandler returns the deleted totals and all chat policies
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	total, err := s.Policy.DeletedTotal(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "failed to get deleted total")
		return
	}
	policies, err := s.Policy.Policies(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "failed to get chat policies")
		return
	}
	rest.RenderJSON(w, rest.JSON{"deleted_total": total, "chats": policies})
}

// getPolicyHandler returns the policy record for a single chat
func (s *Server) getPolicyHandler(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(r.PathValue("chatID"), 10, 64)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "invalid chat id")
		return
	}

	level, err := s.Policy.Strictness(r.Context(), chatID)
	if err != nil {
		if errors.Is(err, storage.ErrUnknownChat) {
			rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotFound, err, "unknown chat")
			return
		}
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "failed to get strictness")
		return
	}
	deleted, err := s.Policy.Deleted(r.Context(), chatID)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "failed to get deleted count")
		return
	}
	rest.RenderJSON(w, storage.ChatPolicy{ChatID: chatID, Strictness: level, Deleted: deleted})
}

// updatePolicyHandler sets the strictness level for a chat, creating the
// policy record if needed
func (s *Server) updatePolicyHandler(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(r.PathValue("chatID"), 10, 64)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "invalid chat id")
		return
	}

	var req struct {
		Strictness int `json:"strictness"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "failed to decode request")
		return
	}
	if req.Strictness < storage.MinStrictness || req.Strictness > storage.MaxStrictness {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest,
			fmt.Errorf("strictness %d out of range [%d, %d]", req.Strictness, storage.MinStrictness, storage.MaxStrictness),
			"invalid strictness")
		return
	}

	if err := s.Policy.EnsureChat(r.Context(), chatID); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "failed to ensure chat")
		return
	}
	if err := s.Policy.SetStrictness(r.Context(), chatID, req.Strictness); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "failed to set strictness")
		return
	}
	log.Printf("[INFO] strictness for chat %d set to %d via web API", chatID, req.Strictness)
	rest.RenderJSON(w, rest.JSON{"chat_id": chatID, "strictness": req.Strictness, "updated": true})
}
