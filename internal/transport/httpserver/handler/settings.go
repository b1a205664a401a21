package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	settingsdomain "surety/internal/domain/settings"
)

type createSettingRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type updateSettingRequest struct {
	Value json.RawMessage `json:"value"`
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// settingValue stores strings verbatim and any other JSON scalar as its text.
func settingValue(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, true
	}
	return string(raw), true
}

func toSettingResponse(setting settingsdomain.Setting) settingResponse {
	return settingResponse{Key: setting.Key, Value: setting.Value}
}

func (h *Handlers) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.ListSettings(r.Context())
	if err != nil {
		h.fail(w, "settings.list", err)
		return
	}

	response := make([]settingResponse, 0, len(settings))
	for _, setting := range settings {
		response = append(response, toSettingResponse(setting))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))

	setting, err := h.Settings.GetSetting(r.Context(), key)
	if err != nil {
		h.fail(w, "settings.get", err, "key", key)
		return
	}
	writeJSON(w, http.StatusOK, toSettingResponse(*setting))
}

func (h *Handlers) CreateSetting(w http.ResponseWriter, r *http.Request) {
	var req createSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	value, ok := settingValue(req.Value)
	if strings.TrimSpace(req.Key) == "" || !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "key and value are required")
		return
	}

	setting, err := h.Settings.SetSetting(r.Context(), req.Key, value)
	if err != nil {
		h.fail(w, "settings.create", err, "key", req.Key)
		return
	}
	writeJSON(w, http.StatusCreated, toSettingResponse(*setting))
}

func (h *Handlers) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	var req updateSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	value, ok := settingValue(req.Value)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "value is required")
		return
	}

	setting, err := h.Settings.SetSetting(r.Context(), key, value)
	if err != nil {
		h.fail(w, "settings.update", err, "key", key)
		return
	}
	writeJSON(w, http.StatusOK, toSettingResponse(*setting))
}

func (h *Handlers) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))

	if err := h.Settings.DeleteSetting(r.Context(), key); err != nil {
		h.fail(w, "settings.delete", err, "key", key)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
