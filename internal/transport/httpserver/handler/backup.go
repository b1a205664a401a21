package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	backupdomain "surety/internal/domain/backup"
)

// DefaultMaxBackupBytes caps restore uploads when Services leaves it unset.
const DefaultMaxBackupBytes = 64 << 20

type restoreResponse struct {
	Success  bool                `json:"success"`
	Restored backupdomain.Counts `json:"restored"`
}

// ExportBackup streams a full snapshot as a file download.
func (h *Handlers) ExportBackup(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Backup.Build(r.Context())
	if err != nil {
		h.fail(w, "backup.export", err)
		return
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		h.fail(w, "backup.export", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.Backup.Filename()+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// RestoreBackup replaces all data with the uploaded snapshot.
func (h *Handlers) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBackupBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.BusinessError("backup.restore: payload_too_large", err, "limit", tooLarge.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "backup payload too large")
			return
		}
		h.log.BusinessError("backup.restore: invalid_body", err)
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to read request body")
		return
	}

	counts, err := h.Backup.RestoreJSON(r.Context(), raw)
	if err != nil {
		h.fail(w, "backup.restore", err)
		return
	}

	h.log.Info("backup.restore: completed", "counts", counts)
	writeJSON(w, http.StatusOK, restoreResponse{Success: true, Restored: counts})
}
