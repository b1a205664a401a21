package handler

import (
	"encoding/json"
	"io"
	"net/http"

	policiesdomain "surety/internal/domain/policies"
)

const maxExtensionBytes = 1 << 20

type paymentRequest struct {
	PeriodNumber int64    `json:"periodNumber"`
	DueDate      string   `json:"dueDate"`
	Amount       float64  `json:"amount"`
	Status       string   `json:"status"`
	PaidDate     *string  `json:"paidDate"`
	PaidAmount   *float64 `json:"paidAmount"`
}

type paymentResponse struct {
	ID           int64    `json:"id"`
	PolicyID     int64    `json:"policyId"`
	PeriodNumber int64    `json:"periodNumber"`
	DueDate      string   `json:"dueDate"`
	Amount       float64  `json:"amount"`
	Status       string   `json:"status"`
	PaidDate     *string  `json:"paidDate"`
	PaidAmount   *float64 `json:"paidAmount"`
}

type coverageItemRequest struct {
	Name            string   `json:"name"`
	PeriodLimit     *float64 `json:"periodLimit"`
	LifetimeLimit   *float64 `json:"lifetimeLimit"`
	Deductible      *float64 `json:"deductible"`
	CoveragePercent *float64 `json:"coveragePercent"`
	IsOptional      bool     `json:"isOptional"`
	Notes           *string  `json:"notes"`
	SortOrder       int64    `json:"sortOrder"`
}

type coverageItemResponse struct {
	ID              int64    `json:"id"`
	PolicyID        int64    `json:"policyId"`
	Name            string   `json:"name"`
	PeriodLimit     *float64 `json:"periodLimit"`
	LifetimeLimit   *float64 `json:"lifetimeLimit"`
	Deductible      *float64 `json:"deductible"`
	CoveragePercent *float64 `json:"coveragePercent"`
	IsOptional      bool     `json:"isOptional"`
	Notes           *string  `json:"notes"`
	SortOrder       int64    `json:"sortOrder"`
}

type beneficiaryRequest struct {
	MemberID       *int64  `json:"memberId"`
	ExternalName   *string `json:"externalName"`
	ExternalIDCard *string `json:"externalIdCard"`
	SharePercent   float64 `json:"sharePercent"`
	RankOrder      int64   `json:"rankOrder"`
}

type beneficiaryResponse struct {
	ID             int64   `json:"id"`
	PolicyID       int64   `json:"policyId"`
	MemberID       *int64  `json:"memberId"`
	ExternalName   *string `json:"externalName"`
	ExternalIDCard *string `json:"externalIdCard"`
	SharePercent   float64 `json:"sharePercent"`
	RankOrder      int64   `json:"rankOrder"`
}

type cashValueRequest struct {
	PolicyYear int64   `json:"policyYear"`
	Value      float64 `json:"value"`
}

type cashValueResponse struct {
	ID         int64   `json:"id"`
	PolicyID   int64   `json:"policyId"`
	PolicyYear int64   `json:"policyYear"`
	Value      float64 `json:"value"`
}

func (req paymentRequest) input() policiesdomain.PaymentInput {
	return policiesdomain.PaymentInput{
		PeriodNumber: req.PeriodNumber,
		DueDate:      req.DueDate,
		Amount:       req.Amount,
		Status:       req.Status,
		PaidDate:     req.PaidDate,
		PaidAmount:   req.PaidAmount,
	}
}

func toPaymentResponse(payment policiesdomain.Payment) paymentResponse {
	return paymentResponse{
		ID:           payment.ID,
		PolicyID:     payment.PolicyID,
		PeriodNumber: payment.PeriodNumber,
		DueDate:      payment.DueDate,
		Amount:       payment.Amount,
		Status:       payment.Status,
		PaidDate:     payment.PaidDate,
		PaidAmount:   payment.PaidAmount,
	}
}

func (req coverageItemRequest) input() policiesdomain.CoverageItemInput {
	return policiesdomain.CoverageItemInput{
		Name:            req.Name,
		PeriodLimit:     req.PeriodLimit,
		LifetimeLimit:   req.LifetimeLimit,
		Deductible:      req.Deductible,
		CoveragePercent: req.CoveragePercent,
		IsOptional:      req.IsOptional,
		Notes:           req.Notes,
		SortOrder:       req.SortOrder,
	}
}

func toCoverageItemResponse(item policiesdomain.CoverageItem) coverageItemResponse {
	return coverageItemResponse{
		ID:              item.ID,
		PolicyID:        item.PolicyID,
		Name:            item.Name,
		PeriodLimit:     item.PeriodLimit,
		LifetimeLimit:   item.LifetimeLimit,
		Deductible:      item.Deductible,
		CoveragePercent: item.CoveragePercent,
		IsOptional:      item.IsOptional,
		Notes:           item.Notes,
		SortOrder:       item.SortOrder,
	}
}

// Payments

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	payments, err := h.Policies.ListPayments(r.Context(), policyID)
	if err != nil {
		h.fail(w, "payments.list", err, "policy_id", policyID)
		return
	}

	response := make([]paymentResponse, 0, len(payments))
	for _, payment := range payments {
		response = append(response, toPaymentResponse(payment))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	payment, err := h.Policies.CreatePayment(r.Context(), policyID, req.input())
	if err != nil {
		h.fail(w, "payments.create", err, "policy_id", policyID)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(*payment))
}

func (h *Handlers) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	paymentID, ok := pathID(w, r, "paymentId")
	if !ok {
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	payment, err := h.Policies.UpdatePayment(r.Context(), policyID, paymentID, req.input())
	if err != nil {
		h.fail(w, "payments.update", err, "policy_id", policyID, "payment_id", paymentID)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(*payment))
}

func (h *Handlers) DeletePayment(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	paymentID, ok := pathID(w, r, "paymentId")
	if !ok {
		return
	}

	if err := h.Policies.DeletePayment(r.Context(), policyID, paymentID); err != nil {
		h.fail(w, "payments.delete", err, "policy_id", policyID, "payment_id", paymentID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Coverage items

func (h *Handlers) ListCoverageItems(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.Policies.ListCoverageItems(r.Context(), policyID)
	if err != nil {
		h.fail(w, "coverage_items.list", err, "policy_id", policyID)
		return
	}

	response := make([]coverageItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toCoverageItemResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetCoverageItem(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	item, err := h.Policies.GetCoverageItem(r.Context(), policyID, itemID)
	if err != nil {
		h.fail(w, "coverage_items.get", err, "policy_id", policyID, "item_id", itemID)
		return
	}
	writeJSON(w, http.StatusOK, toCoverageItemResponse(*item))
}

func (h *Handlers) CreateCoverageItem(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req coverageItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.Policies.CreateCoverageItem(r.Context(), policyID, req.input())
	if err != nil {
		h.fail(w, "coverage_items.create", err, "policy_id", policyID)
		return
	}
	writeJSON(w, http.StatusCreated, toCoverageItemResponse(*item))
}

func (h *Handlers) UpdateCoverageItem(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	var req coverageItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.Policies.UpdateCoverageItem(r.Context(), policyID, itemID, req.input())
	if err != nil {
		h.fail(w, "coverage_items.update", err, "policy_id", policyID, "item_id", itemID)
		return
	}
	writeJSON(w, http.StatusOK, toCoverageItemResponse(*item))
}

func (h *Handlers) DeleteCoverageItem(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.Policies.DeleteCoverageItem(r.Context(), policyID, itemID); err != nil {
		h.fail(w, "coverage_items.delete", err, "policy_id", policyID, "item_id", itemID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Beneficiaries

func toBeneficiaryResponses(beneficiaries []policiesdomain.Beneficiary) []beneficiaryResponse {
	response := make([]beneficiaryResponse, 0, len(beneficiaries))
	for _, beneficiary := range beneficiaries {
		response = append(response, beneficiaryResponse{
			ID:             beneficiary.ID,
			PolicyID:       beneficiary.PolicyID,
			MemberID:       beneficiary.MemberID,
			ExternalName:   beneficiary.ExternalName,
			ExternalIDCard: beneficiary.ExternalIDCard,
			SharePercent:   beneficiary.SharePercent,
			RankOrder:      beneficiary.RankOrder,
		})
	}
	return response
}

func (h *Handlers) ListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	beneficiaries, err := h.Policies.ListBeneficiaries(r.Context(), policyID)
	if err != nil {
		h.fail(w, "beneficiaries.list", err, "policy_id", policyID)
		return
	}
	writeJSON(w, http.StatusOK, toBeneficiaryResponses(beneficiaries))
}

func (h *Handlers) ReplaceBeneficiaries(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req []beneficiaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	inputs := make([]policiesdomain.BeneficiaryInput, 0, len(req))
	for _, item := range req {
		inputs = append(inputs, policiesdomain.BeneficiaryInput{
			MemberID:       item.MemberID,
			ExternalName:   item.ExternalName,
			ExternalIDCard: item.ExternalIDCard,
			SharePercent:   item.SharePercent,
			RankOrder:      item.RankOrder,
		})
	}

	beneficiaries, err := h.Policies.ReplaceBeneficiaries(r.Context(), policyID, inputs)
	if err != nil {
		h.fail(w, "beneficiaries.replace", err, "policy_id", policyID)
		return
	}
	writeJSON(w, http.StatusOK, toBeneficiaryResponses(beneficiaries))
}

// Cash values

func toCashValueResponses(values []policiesdomain.CashValue) []cashValueResponse {
	response := make([]cashValueResponse, 0, len(values))
	for _, value := range values {
		response = append(response, cashValueResponse{
			ID:         value.ID,
			PolicyID:   value.PolicyID,
			PolicyYear: value.PolicyYear,
			Value:      value.Value,
		})
	}
	return response
}

func (h *Handlers) ListCashValues(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	values, err := h.Policies.ListCashValues(r.Context(), policyID)
	if err != nil {
		h.fail(w, "cash_values.list", err, "policy_id", policyID)
		return
	}
	writeJSON(w, http.StatusOK, toCashValueResponses(values))
}

func (h *Handlers) ReplaceCashValues(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req []cashValueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	inputs := make([]policiesdomain.CashValueInput, 0, len(req))
	for _, item := range req {
		inputs = append(inputs, policiesdomain.CashValueInput{PolicyYear: item.PolicyYear, Value: item.Value})
	}

	values, err := h.Policies.ReplaceCashValues(r.Context(), policyID, inputs)
	if err != nil {
		h.fail(w, "cash_values.replace", err, "policy_id", policyID)
		return
	}
	writeJSON(w, http.StatusOK, toCashValueResponses(values))
}

// Extension

func (h *Handlers) GetExtension(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	extension, err := h.Policies.GetExtension(r.Context(), policyID)
	if err != nil {
		h.fail(w, "extension.get", err, "policy_id", policyID)
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(extension.Data))
}

func (h *Handlers) SetExtension(w http.ResponseWriter, r *http.Request) {
	policyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxExtensionBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	extension, err := h.Policies.SetExtension(r.Context(), policyID, body)
	if err != nil {
		h.fail(w, "extension.set", err, "policy_id", policyID)
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(extension.Data))
}
