package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	db "github.com/listing-magic/content-backend/internal/storage"
)

const defaultUsageDetailDays = 30

// UsageReader serves persisted usage aggregates. Nil when the service runs
// without Postgres.
type UsageReader interface {
	GetDailyUsage(ctx context.Context) (*db.UsageSummary, error)
	GetMonthlyUsage(ctx context.Context) (*db.UsageSummary, error)
	GetUsageSince(ctx context.Context, since time.Time) (*db.UsageSummary, error)
	GetUsageDetails(ctx context.Context, since time.Time) ([]db.AIUsage, error)
}

// UsageResponse wraps a persisted usage aggregate with the period it covers.
type UsageResponse struct {
	Period  string           `json:"period"`
	Summary *db.UsageSummary `json:"summary"`
}

// UsageDetailsResponse lists per-day usage rows.
type UsageDetailsResponse struct {
	Days    int          `json:"days"`
	Records []db.AIUsage `json:"records"`
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	if s.usage == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "Usage persistence is not configured")

		return
	}

	var (
		summary *db.UsageSummary
		period  string
		err     error
	)

	query := r.URL.Query()

	switch {
	case query.Get("days") != "":
		days, convErr := strconv.Atoi(query.Get("days"))
		if convErr != nil || days <= 0 {
			s.writeError(w, r, http.StatusBadRequest, "days must be a positive integer")

			return
		}

		period = query.Get("days") + "d"
		summary, err = s.usage.GetUsageSince(r.Context(), time.Now().UTC().AddDate(0, 0, -days))
	case query.Get("period") == "" || query.Get("period") == "daily":
		period = "daily"
		summary, err = s.usage.GetDailyUsage(r.Context())
	case query.Get("period") == "monthly":
		period = "monthly"
		summary, err = s.usage.GetMonthlyUsage(r.Context())
	default:
		s.writeError(w, r, http.StatusBadRequest, "period must be daily or monthly")

		return
	}

	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "Failed to load usage: "+err.Error())

		return
	}

	s.writeJSON(w, http.StatusOK, UsageResponse{Period: period, Summary: summary})
}

func (s *Server) handleUsageDetails(w http.ResponseWriter, r *http.Request) {
	if s.usage == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "Usage persistence is not configured")

		return
	}

	days := defaultUsageDetailDays

	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, r, http.StatusBadRequest, "days must be a positive integer")

			return
		}

		days = n
	}

	records, err := s.usage.GetUsageDetails(r.Context(), time.Now().UTC().AddDate(0, 0, -days))
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "Failed to load usage details: "+err.Error())

		return
	}

	if records == nil {
		records = []db.AIUsage{}
	}

	s.writeJSON(w, http.StatusOK, UsageDetailsResponse{Days: days, Records: records})
}
