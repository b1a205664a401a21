package handler

import (
	"net/http"
	"strconv"
	"strings"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.log.InternalError("health: database ping failed", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Analytics.DashboardOverview(r.Context())
	if err != nil {
		h.fail(w, "dashboard.overview", err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// CoverageLookup serves /coverage-lookup?type=member|asset&id=N.
func (h *Handlers) CoverageLookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	target := strings.TrimSpace(query.Get("type"))
	id, err := strconv.ParseInt(strings.TrimSpace(query.Get("id")), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	coverage, err := h.Analytics.Coverage(r.Context(), target, id)
	if err != nil {
		h.fail(w, "coverage.lookup", err, "type", target, "id", id)
		return
	}
	writeJSON(w, http.StatusOK, coverage)
}

// RenewalCalendar serves /renewal-calendar?months=N.
func (h *Handlers) RenewalCalendar(w http.ResponseWriter, r *http.Request) {
	months, err := parseIntParam(r.URL.Query().Get("months"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid months")
		return
	}

	calendar, err := h.Analytics.RenewalCalendar(r.Context(), months)
	if err != nil {
		h.fail(w, "renewals.calendar", err, "months", months)
		return
	}
	writeJSON(w, http.StatusOK, calendar)
}

// MemberCoverage serves /member-coverage?memberId=N. Without memberId the
// first member is selected.
func (h *Handlers) MemberCoverage(w http.ResponseWriter, r *http.Request) {
	var memberID *int64
	if raw := strings.TrimSpace(r.URL.Query().Get("memberId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid memberId")
			return
		}
		memberID = &id
	}

	board, err := h.Analytics.CoverageBoard(r.Context(), memberID)
	if err != nil {
		h.fail(w, "coverage.board", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
