package handler

import (
	"net/http"

	membersdomain "surety/internal/domain/members"
)

type memberRequest struct {
	Name               string  `json:"name"`
	Relation           string  `json:"relation"`
	Gender             *string `json:"gender"`
	BirthDate          *string `json:"birthDate"`
	IDCard             *string `json:"idCard"`
	IDType             *string `json:"idType"`
	IDExpiry           *string `json:"idExpiry"`
	Phone              *string `json:"phone"`
	HasSocialInsurance *bool   `json:"hasSocialInsurance"`
}

type memberResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Relation           string  `json:"relation"`
	Gender             *string `json:"gender"`
	BirthDate          *string `json:"birthDate"`
	IDCard             *string `json:"idCard"`
	IDType             *string `json:"idType"`
	IDExpiry           *string `json:"idExpiry"`
	Phone              *string `json:"phone"`
	HasSocialInsurance *bool   `json:"hasSocialInsurance"`
	CreatedAt          int64   `json:"createdAt"`
	UpdatedAt          int64   `json:"updatedAt"`
}

func (req memberRequest) input() membersdomain.MemberInput {
	return membersdomain.MemberInput{
		Name:               req.Name,
		Relation:           req.Relation,
		Gender:             req.Gender,
		BirthDate:          req.BirthDate,
		IDCard:             req.IDCard,
		IDType:             req.IDType,
		IDExpiry:           req.IDExpiry,
		Phone:              req.Phone,
		HasSocialInsurance: req.HasSocialInsurance,
	}
}

func toMemberResponse(member membersdomain.Member) memberResponse {
	return memberResponse{
		ID:                 member.ID,
		Name:               member.Name,
		Relation:           member.Relation,
		Gender:             member.Gender,
		BirthDate:          member.BirthDate,
		IDCard:             member.IDCard,
		IDType:             member.IDType,
		IDExpiry:           member.IDExpiry,
		Phone:              member.Phone,
		HasSocialInsurance: member.HasSocialInsurance,
		CreatedAt:          member.CreatedAt,
		UpdatedAt:          member.UpdatedAt,
	}
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.ListMembers(r.Context())
	if err != nil {
		h.fail(w, "members.list", err)
		return
	}

	response := make([]memberResponse, 0, len(members))
	for _, member := range members {
		response = append(response, toMemberResponse(member))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	member, err := h.Members.GetMember(r.Context(), id)
	if err != nil {
		h.fail(w, "members.get", err, "member_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(*member))
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	member, err := h.Members.CreateMember(r.Context(), req.input())
	if err != nil {
		h.fail(w, "members.create", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(*member))
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	member, err := h.Members.UpdateMember(r.Context(), id, req.input())
	if err != nil {
		h.fail(w, "members.update", err, "member_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(*member))
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Members.DeleteMember(r.Context(), id); err != nil {
		h.fail(w, "members.delete", err, "member_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
