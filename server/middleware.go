package server

import (
	"net"
	"net/http"
	"time"

	"github.com/activecm/mdl/util"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// allowedSubnetsOnly rejects clients outside the configured subnets. Only
// the connection's remote address is trusted; forwarding headers are ignored.
func (s *Server) allowedSubnetsOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		ip := net.ParseIP(host)
		if ip == nil || !util.ContainsIP(s.allowed, ip) {
			s.log.WithField("client", r.RemoteAddr).Warn("Rejected request from outside the allowed subnets")
			writeError(w, http.StatusForbidden, "access denied")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// logRequests logs every request at debug level
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(wrapped, r)

		s.log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapped.Status(),
			"client":   r.RemoteAddr,
			"duration": time.Since(start),
		}).Debug("Handled request")
	})
}
