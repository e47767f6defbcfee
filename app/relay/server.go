// Package relay is the application core: it owns the store, the publishers
// and the HTTP edge, and applies the relay's acceptance policies.
package relay

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"go.uber.org/atomic"

	"okra.dev/app/config"
	"okra.dev/app/relay/publish"
	"okra.dev/interfaces/publisher"
	"okra.dev/interfaces/server"
	"okra.dev/interfaces/store"
	"okra.dev/protocol/socketapi"
	"okra.dev/utils/chk"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
)

// Server is the relay. It implements server.I for the websocket sessions.
type Server struct {
	Ctx        context.T
	Cancel     context.F
	store      store.I
	subs       *socketapi.S
	listeners  *publish.S
	httpServer *http.Server
	policy     atomic.Pointer[Policy]
	*config.C
}

// ServerParams carries what NewServer needs.
type ServerParams struct {
	Ctx    context.T
	Cancel context.F
	Sto    store.I
	DbPath string
	*config.C
}

var _ server.I = &Server{}

// NewServer initialises the store, parses the allow list and wires the
// publishers together. The broadcast queue starts draining immediately.
func NewServer(sp *ServerParams) (s *Server, err error) {
	if sp.Sto != nil {
		if err = sp.Sto.Init(sp.DbPath); chk.T(err) {
			return nil, fmt.Errorf("storage init: %w", err)
		}
	}
	s = &Server{
		Ctx:    sp.Ctx,
		Cancel: sp.Cancel,
		store:  sp.Sto,
		C:      sp.C,
	}
	s.SetPolicy(policyFromConfig(sp.C))
	s.subs = socketapi.New()
	s.listeners = publish.New(s.subs)
	go s.listeners.Run(s.Ctx)
	return s, nil
}

// Context returns the server's root context.
func (s *Server) Context() context.T { return s.Ctx }

// Storage returns the event store.
func (s *Server) Storage() store.I { return s.store }

// Publisher returns the broadcast queue.
func (s *Server) Publisher() publisher.I { return s.listeners }

// AuthRequired reports whether sessions must authenticate first.
func (s *Server) AuthRequired() bool { return s.Policy().AuthRequired }

// ServiceURL is the websocket URL of this relay as the client sees it.
func (s *Server) ServiceURL(req *http.Request) string {
	if req == nil {
		return ""
	}
	host := req.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = req.Host
	}
	proto := req.Header.Get("X-Forwarded-Proto")
	switch {
	case proto == "https":
		proto = "wss"
	case proto == "http":
		proto = "ws"
	case req.TLS != nil:
		proto = "wss"
	default:
		proto = "ws"
	}
	return proto + "://" + host
}

// ServeHTTP serves the nostr protocol on the root path: websocket upgrades
// and the relay information document.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Upgrade") == "websocket" {
		a := &socketapi.A{I: s, Subs: s.subs}
		a.Serve(w, r, s)
		return
	}
	s.HandleRelayInfo(w, r)
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start(addr string, port int) (err error) {
	listenAddr := net.JoinHostPort(addr, strconv.Itoa(port))
	mux := chi.NewRouter()
	mux.HandleFunc("/", s.ServeHTTP)
	handler := cors.New(
		cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "HEAD"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		},
	).Handler(mux)
	s.httpServer = &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 7 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.I.F("listening on %s", listenAddr)
	err = s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		err = nil
	}
	return
}

// Shutdown stops the HTTP server, closes the store and cancels the root
// context so every session ends.
func (s *Server) Shutdown() {
	log.I.F("shutting down")
	s.Cancel()
	if s.httpServer != nil {
		c, cancel := context.Timeout(context.Bg(), 5*time.Second)
		defer cancel()
		chk.E(s.httpServer.Shutdown(c))
	}
	if s.store != nil {
		chk.E(s.store.Sync())
		chk.E(s.store.Close())
	}
}
