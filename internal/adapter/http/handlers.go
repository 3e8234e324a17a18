package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/adapter/nasa"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
)

const dateLayout = "2006-01-02"

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startParam, endParam := q.Get("startDate"), q.Get("endDate")
	if startParam == "" || endParam == "" {
		s.handleTodayFeed(w, r)
		return
	}

	start, err := time.Parse(dateLayout, startParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid startDate %q: expected YYYY-MM-DD", startParam))
		return
	}
	end, err := time.Parse(dateLayout, endParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid endDate %q: expected YYYY-MM-DD", endParam))
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "endDate must not be before startDate")
		return
	}

	records, err := s.feeds.Feed(r.Context(), start, end)
	s.writeFeed(w, r, records, err)
}

func (s *Server) handleTodayFeed(w http.ResponseWriter, r *http.Request) {
	records, err := s.feeds.TodayFeed(r.Context())
	s.writeFeed(w, r, records, err)
}

func (s *Server) writeFeed(w http.ResponseWriter, r *http.Request, records []domain.NearEarthObject, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, nasa.ErrUpstream) {
			status = http.StatusBadGateway
		}
		s.logger.Error("neo feed request failed", "error", err, "status", status, "request_id", RequestID(r.Context()))
		writeError(w, status, "failed to fetch NEO data: "+err.Error())
		return
	}
	if records == nil {
		records = []domain.NearEarthObject{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := floatParam(q.Get("lat"), "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lng, err := floatParam(q.Get("lng"), "lng")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	energy, err := floatParam(q.Get("kineticEnergy"), "kineticEnergy")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := domain.ValidateCoords(lat, lng); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if math.IsInf(energy, 0) || energy <= 0 {
		writeError(w, http.StatusBadRequest, "kineticEnergy must be a positive finite number of joules")
		return
	}

	writeJSON(w, http.StatusOK, s.impacts.Report(r.Context(), lat, lng, energy))
}

func floatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %s", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid %s %q: expected a number", name, raw)
	}
	return v, nil
}
