package handler

import (
	"net/http"

	insurersdomain "surety/internal/domain/insurers"
)

type insurerRequest struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
}

type insurerResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Website   *string `json:"website"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

func toInsurerResponse(insurer insurersdomain.Insurer) insurerResponse {
	return insurerResponse{
		ID:        insurer.ID,
		Name:      insurer.Name,
		Phone:     insurer.Phone,
		Website:   insurer.Website,
		CreatedAt: insurer.CreatedAt,
		UpdatedAt: insurer.UpdatedAt,
	}
}

func (h *Handlers) ListInsurers(w http.ResponseWriter, r *http.Request) {
	insurers, err := h.Insurers.ListInsurers(r.Context())
	if err != nil {
		h.fail(w, "insurers.list", err)
		return
	}

	response := make([]insurerResponse, 0, len(insurers))
	for _, insurer := range insurers {
		response = append(response, toInsurerResponse(insurer))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetInsurer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	insurer, err := h.Insurers.GetInsurer(r.Context(), id)
	if err != nil {
		h.fail(w, "insurers.get", err, "insurer_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toInsurerResponse(*insurer))
}

func (h *Handlers) CreateInsurer(w http.ResponseWriter, r *http.Request) {
	var req insurerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	insurer, err := h.Insurers.CreateInsurer(r.Context(), insurersdomain.InsurerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Website: req.Website,
	})
	if err != nil {
		h.fail(w, "insurers.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, toInsurerResponse(*insurer))
}

func (h *Handlers) UpdateInsurer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req insurerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	insurer, err := h.Insurers.UpdateInsurer(r.Context(), id, insurersdomain.InsurerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Website: req.Website,
	})
	if err != nil {
		h.fail(w, "insurers.update", err, "insurer_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toInsurerResponse(*insurer))
}

func (h *Handlers) DeleteInsurer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Insurers.DeleteInsurer(r.Context(), id); err != nil {
		h.fail(w, "insurers.delete", err, "insurer_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
