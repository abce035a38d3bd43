// Package server answers malware domain list lookups over HTTP
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/activecm/mdl/pkg/mdl"
	"github.com/activecm/mdl/resources"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// shutdownTimeout bounds how long in flight requests may take to finish
// once the server is asked to stop
const shutdownTimeout = 5 * time.Second

type (
	// Server serves lookups against a single loaded list. The list is read
	// only, so requests are handled concurrently without locking.
	Server struct {
		Address string
		list    *mdl.List
		log     *log.Logger
		allowed []*net.IPNet
		metrics *metrics
		router  *chi.Mux
		http    *http.Server
	}
)

// New creates a server for list listening on address. An empty address
// selects the configured one.
func New(res *resources.Resources, list *mdl.List, address string) *Server {
	if address == "" {
		address = res.Config.S.Server.Address
	}

	s := &Server{
		Address: address,
		list:    list,
		log:     res.Log,
		allowed: res.Config.R.Server.AllowedSubnets,
		router:  chi.NewRouter(),
	}

	registry := prometheus.NewRegistry()
	s.metrics = newMetrics(registry, list)

	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)
	s.router.Use(s.allowedSubnetsOnly)

	s.router.Get("/ip/{address}", s.handleIP)
	s.router.Get("/domain/{domain}", s.handleDomain)
	s.router.Get("/status", s.handleStatus)
	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	s.http = &http.Server{
		Addr:        address,
		Handler:     s.router,
		ReadTimeout: res.Config.R.Server.ReadTimeout,
	}
	return s
}

// Handler returns the router serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on Address until ctx is canceled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve handles connections accepted on listener until ctx is canceled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.log.WithFields(log.Fields{
		"address": listener.Addr().String(),
		"records": s.list.Len(),
	}).Info("Starting lookup server")

	errs := make(chan error, 1)
	go func() {
		errs <- s.http.Serve(listener)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down lookup server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; err != http.ErrServerClosed {
		return err
	}
	return nil
}
