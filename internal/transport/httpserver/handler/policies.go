package handler

import (
	"net/http"

	policiesdomain "surety/internal/domain/policies"
)

type policyRequest struct {
	ApplicantID            int64   `json:"applicantId"`
	InsuredType            string  `json:"insuredType"`
	InsuredMemberID        *int64  `json:"insuredMemberId"`
	InsuredAssetID         *int64  `json:"insuredAssetId"`
	Category               string  `json:"category"`
	SubCategory            *string `json:"subCategory"`
	InsurerID              *int64  `json:"insurerId"`
	InsurerName            string  `json:"insurerName"`
	ProductName            string  `json:"productName"`
	PolicyNumber           string  `json:"policyNumber"`
	Channel                *string `json:"channel"`
	SumAssured             float64 `json:"sumAssured"`
	Premium                float64 `json:"premium"`
	PaymentFrequency       string  `json:"paymentFrequency"`
	PaymentYears           *int64  `json:"paymentYears"`
	TotalPayments          *int64  `json:"totalPayments"`
	RenewalType            *string `json:"renewalType"`
	PaymentAccount         *string `json:"paymentAccount"`
	NextDueDate            *string `json:"nextDueDate"`
	EffectiveDate          string  `json:"effectiveDate"`
	ExpiryDate             *string `json:"expiryDate"`
	HesitationEndDate      *string `json:"hesitationEndDate"`
	WaitingDays            *int64  `json:"waitingDays"`
	GuaranteedRenewalYears *int64  `json:"guaranteedRenewalYears"`
	Status                 string  `json:"status"`
	DeathBenefit           *string `json:"deathBenefit"`
	Archived               bool    `json:"archived"`
	PolicyFilePath         *string `json:"policyFilePath"`
	Notes                  *string `json:"notes"`
}

type policyResponse struct {
	ID                     int64   `json:"id"`
	ApplicantID            int64   `json:"applicantId"`
	InsuredType            string  `json:"insuredType"`
	InsuredMemberID        *int64  `json:"insuredMemberId"`
	InsuredAssetID         *int64  `json:"insuredAssetId"`
	Category               string  `json:"category"`
	SubCategory            *string `json:"subCategory"`
	InsurerID              *int64  `json:"insurerId"`
	InsurerName            string  `json:"insurerName"`
	ProductName            string  `json:"productName"`
	PolicyNumber           string  `json:"policyNumber"`
	Channel                *string `json:"channel"`
	SumAssured             float64 `json:"sumAssured"`
	Premium                float64 `json:"premium"`
	PaymentFrequency       string  `json:"paymentFrequency"`
	PaymentYears           *int64  `json:"paymentYears"`
	TotalPayments          *int64  `json:"totalPayments"`
	RenewalType            *string `json:"renewalType"`
	PaymentAccount         *string `json:"paymentAccount"`
	NextDueDate            *string `json:"nextDueDate"`
	EffectiveDate          string  `json:"effectiveDate"`
	ExpiryDate             *string `json:"expiryDate"`
	HesitationEndDate      *string `json:"hesitationEndDate"`
	WaitingDays            *int64  `json:"waitingDays"`
	GuaranteedRenewalYears *int64  `json:"guaranteedRenewalYears"`
	Status                 string  `json:"status"`
	DisplayStatus          string  `json:"displayStatus"`
	DeathBenefit           *string `json:"deathBenefit"`
	Archived               bool    `json:"archived"`
	PolicyFilePath         *string `json:"policyFilePath"`
	Notes                  *string `json:"notes"`
	CreatedAt              int64   `json:"createdAt"`
	UpdatedAt              int64   `json:"updatedAt"`
}

func (req policyRequest) input() policiesdomain.PolicyInput {
	return policiesdomain.PolicyInput{
		ApplicantID:            req.ApplicantID,
		InsuredType:            req.InsuredType,
		InsuredMemberID:        req.InsuredMemberID,
		InsuredAssetID:         req.InsuredAssetID,
		Category:               req.Category,
		SubCategory:            req.SubCategory,
		InsurerID:              req.InsurerID,
		InsurerName:            req.InsurerName,
		ProductName:            req.ProductName,
		PolicyNumber:           req.PolicyNumber,
		Channel:                req.Channel,
		SumAssured:             req.SumAssured,
		Premium:                req.Premium,
		PaymentFrequency:       req.PaymentFrequency,
		PaymentYears:           req.PaymentYears,
		TotalPayments:          req.TotalPayments,
		RenewalType:            req.RenewalType,
		PaymentAccount:         req.PaymentAccount,
		NextDueDate:            req.NextDueDate,
		EffectiveDate:          req.EffectiveDate,
		ExpiryDate:             req.ExpiryDate,
		HesitationEndDate:      req.HesitationEndDate,
		WaitingDays:            req.WaitingDays,
		GuaranteedRenewalYears: req.GuaranteedRenewalYears,
		Status:                 req.Status,
		DeathBenefit:           req.DeathBenefit,
		Archived:               req.Archived,
		PolicyFilePath:         req.PolicyFilePath,
		Notes:                  req.Notes,
	}
}

func (h *Handlers) toPolicyResponse(policy policiesdomain.Policy) policyResponse {
	return policyResponse{
		ID:                     policy.ID,
		ApplicantID:            policy.ApplicantID,
		InsuredType:            policy.InsuredType,
		InsuredMemberID:        policy.InsuredMemberID,
		InsuredAssetID:         policy.InsuredAssetID,
		Category:               policy.Category,
		SubCategory:            policy.SubCategory,
		InsurerID:              policy.InsurerID,
		InsurerName:            policy.InsurerName,
		ProductName:            policy.ProductName,
		PolicyNumber:           policy.PolicyNumber,
		Channel:                policy.Channel,
		SumAssured:             policy.SumAssured,
		Premium:                policy.Premium,
		PaymentFrequency:       policy.PaymentFrequency,
		PaymentYears:           policy.PaymentYears,
		TotalPayments:          policy.TotalPayments,
		RenewalType:            policy.RenewalType,
		PaymentAccount:         policy.PaymentAccount,
		NextDueDate:            policy.NextDueDate,
		EffectiveDate:          policy.EffectiveDate,
		ExpiryDate:             policy.ExpiryDate,
		HesitationEndDate:      policy.HesitationEndDate,
		WaitingDays:            policy.WaitingDays,
		GuaranteedRenewalYears: policy.GuaranteedRenewalYears,
		Status:                 policy.Status,
		DisplayStatus:          h.Policies.DisplayStatus(policy),
		DeathBenefit:           policy.DeathBenefit,
		Archived:               policy.Archived,
		PolicyFilePath:         policy.PolicyFilePath,
		Notes:                  policy.Notes,
		CreatedAt:              policy.CreatedAt,
		UpdatedAt:              policy.UpdatedAt,
	}
}

func (h *Handlers) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.Policies.ListPolicies(r.Context())
	if err != nil {
		h.fail(w, "policies.list", err)
		return
	}

	response := make([]policyResponse, 0, len(policies))
	for _, policy := range policies {
		response = append(response, h.toPolicyResponse(policy))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	policy, err := h.Policies.GetPolicy(r.Context(), id)
	if err != nil {
		h.fail(w, "policies.get", err, "policy_id", id)
		return
	}
	writeJSON(w, http.StatusOK, h.toPolicyResponse(*policy))
}

func (h *Handlers) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req policyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	policy, err := h.Policies.CreatePolicy(r.Context(), req.input())
	if err != nil {
		h.fail(w, "policies.create", err, "policy_number", req.PolicyNumber)
		return
	}
	writeJSON(w, http.StatusCreated, h.toPolicyResponse(*policy))
}

func (h *Handlers) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req policyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	policy, err := h.Policies.UpdatePolicy(r.Context(), id, req.input())
	if err != nil {
		h.fail(w, "policies.update", err, "policy_id", id)
		return
	}
	writeJSON(w, http.StatusOK, h.toPolicyResponse(*policy))
}

func (h *Handlers) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Policies.DeletePolicy(r.Context(), id); err != nil {
		h.fail(w, "policies.delete", err, "policy_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
