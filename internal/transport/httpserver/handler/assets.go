package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	assetsdomain "surety/internal/domain/assets"
)

type assetRequest struct {
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	Identifier string          `json:"identifier"`
	OwnerID    *int64          `json:"ownerId"`
	Details    json.RawMessage `json:"details"`
}

type assetResponse struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	OwnerID    *int64 `json:"ownerId"`
	Details    any    `json:"details"`
	CreatedAt  int64  `json:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt"`
}

// details accepts either a JSON document or a string holding one.
func (req assetRequest) details() *string {
	raw := bytes.TrimSpace(req.Details)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return &text
	}
	value := string(raw)
	return &value
}

func (req assetRequest) input() assetsdomain.AssetInput {
	return assetsdomain.AssetInput{
		Type:       req.Type,
		Name:       req.Name,
		Identifier: req.Identifier,
		OwnerID:    req.OwnerID,
		Details:    req.details(),
	}
}

func toAssetResponse(asset assetsdomain.Asset) assetResponse {
	return assetResponse{
		ID:         asset.ID,
		Type:       asset.Type,
		Name:       asset.Name,
		Identifier: asset.Identifier,
		OwnerID:    asset.OwnerID,
		Details:    assetsdomain.ParseDetails(asset.Details),
		CreatedAt:  asset.CreatedAt,
		UpdatedAt:  asset.UpdatedAt,
	}
}

func (h *Handlers) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Assets.ListAssets(r.Context())
	if err != nil {
		h.fail(w, "assets.list", err)
		return
	}

	response := make([]assetResponse, 0, len(assets))
	for _, asset := range assets {
		response = append(response, toAssetResponse(asset))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	asset, err := h.Assets.GetAsset(r.Context(), id)
	if err != nil {
		h.fail(w, "assets.get", err, "asset_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toAssetResponse(*asset))
}

func (h *Handlers) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	asset, err := h.Assets.CreateAsset(r.Context(), req.input())
	if err != nil {
		h.fail(w, "assets.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssetResponse(*asset))
}

func (h *Handlers) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req assetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	asset, err := h.Assets.UpdateAsset(r.Context(), id, req.input())
	if err != nil {
		h.fail(w, "assets.update", err, "asset_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toAssetResponse(*asset))
}

func (h *Handlers) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Assets.DeleteAsset(r.Context(), id); err != nil {
		h.fail(w, "assets.delete", err, "asset_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
