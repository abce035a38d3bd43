package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/activecm/mdl/pkg/mdl"
	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	// errorResponse is the body of every non 2xx response
	errorResponse struct {
		Error string `json:"error"`
	}

	// statusResponse describes the loaded list
	statusResponse struct {
		File      string `json:"file"`
		Age       int    `json:"age_days"`
		LoadedAge int    `json:"loaded_age_days"`
		MaxAge    int    `json:"max_age_days"`
		Stale     bool   `json:"stale"`
		Records   int    `json:"records"`
	}
)

func (s *Server) handleIP(w http.ResponseWriter, r *http.Request) {
	address, ok := pathParam(w, r, "address")
	if !ok {
		return
	}

	list, ok := s.view(w, r)
	if !ok {
		return
	}

	record, found := list.SearchIP(address)
	s.metrics.observe(kindIP, found)
	if !found {
		writeError(w, http.StatusNotFound, "no entry found for "+address)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDomain(w http.ResponseWriter, r *http.Request) {
	domain, ok := pathParam(w, r, "domain")
	if !ok {
		return
	}

	mode, err := mdl.ParseDomainMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, ok := s.view(w, r)
	if !ok {
		return
	}

	records, err := list.SearchDomain(domain, mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.observe(kindDomain, len(records) > 0)

	if records == nil {
		records = []mdl.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	age, err := s.list.Age()
	if err != nil {
		s.log.WithField("file", s.list.Filename()).Error(err)
		writeError(w, http.StatusInternalServerError, "unable to read the malware domain list file")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		File:      s.list.Filename(),
		Age:       age,
		LoadedAge: s.list.LoadedAge(),
		MaxAge:    s.list.MaxAge(),
		Stale:     age >= s.list.MaxAge(),
		Records:   s.list.Len(),
	})
}

// pathParam returns the unescaped value of a route parameter. chi hands back
// the raw segment when the request path needed escaping.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+" in request path")
		return "", false
	}
	return value, true
}

// view applies the inactive query parameter to the loaded list. Without the
// parameter the configured filter is kept.
func (s *Server) view(w http.ResponseWriter, r *http.Request) (*mdl.List, bool) {
	param := r.URL.Query().Get("inactive")
	if param == "" {
		return s.list, true
	}

	showInactive, err := strconv.ParseBool(param)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inactive parameter "+strconv.Quote(param))
		return nil, false
	}
	return s.list.View(showInactive), true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithField("status", status).Debug(err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
