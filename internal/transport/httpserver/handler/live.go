package handler

import (
	"math"
	"net/http"
	"os"
	"regexp"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// okWord is masked in failure messages so keyword monitors never match a
// failing response.
var okWord = regexp.MustCompile(`(?i)\bok\b`)

type liveDatabase struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

type liveResponse struct {
	Status    string       `json:"status"`
	Timestamp string       `json:"timestamp"`
	Uptime    int64        `json:"uptime"`
	Database  liveDatabase `json:"database"`
	Runtime   string       `json:"runtime"`
	Version   string       `json:"version"`
	MemoryMB  int64        `json:"memoryMB"`
}

// Live reports process liveness with a database check. A failed check
// answers 503. Responses are never cached.
func (h *Handlers) Live(w http.ResponseWriter, r *http.Request) {
	resp := liveResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Uptime:    int64(math.Round(time.Since(h.startedAt).Seconds())),
		Database:  liveDatabase{Connected: true},
		Runtime:   runtime.Version(),
		Version:   h.version,
		MemoryMB:  h.residentMB(r),
	}

	status := http.StatusOK
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.log.InternalError("live: database ping failed", err)
			resp.Status = "error"
			resp.Database = liveDatabase{Error: okWord.ReplaceAllString(err.Error(), "***")}
			status = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	writeJSON(w, status, resp)
}

// residentMB returns the process resident set size, or zero when the
// platform does not expose it.
func (h *Handlers) residentMB(r *http.Request) int64 {
	proc, err := process.NewProcessWithContext(r.Context(), int32(os.Getpid()))
	if err != nil {
		h.log.Debug("live: process lookup failed", "error", err)
		return 0
	}
	mem, err := proc.MemoryInfoWithContext(r.Context())
	if err != nil {
		h.log.Debug("live: memory info failed", "error", err)
		return 0
	}
	return int64(math.Round(float64(mem.RSS) / (1 << 20)))
}
