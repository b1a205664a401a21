package handler

import (
	"errors"
	"net/http"

	analyticsdomain "surety/internal/domain/analytics"
	assetsdomain "surety/internal/domain/assets"
	backupdomain "surety/internal/domain/backup"
	insurersdomain "surety/internal/domain/insurers"
	membersdomain "surety/internal/domain/members"
	policiesdomain "surety/internal/domain/policies"
	settingsdomain "surety/internal/domain/settings"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// An empty message means the error text itself is safe to return.
var errorMappings = []errorMapping{
	{membersdomain.ErrMemberNotFound, http.StatusNotFound, "member_not_found", "member not found"},
	{insurersdomain.ErrInsurerNotFound, http.StatusNotFound, "insurer_not_found", "insurer not found"},
	{assetsdomain.ErrAssetNotFound, http.StatusNotFound, "asset_not_found", "asset not found"},
	{policiesdomain.ErrPolicyNotFound, http.StatusNotFound, "policy_not_found", "policy not found"},
	{policiesdomain.ErrPaymentNotFound, http.StatusNotFound, "payment_not_found", "payment not found"},
	{policiesdomain.ErrCoverageItemNotFound, http.StatusNotFound, "coverage_item_not_found", "coverage item not found"},
	{policiesdomain.ErrExtensionNotFound, http.StatusNotFound, "extension_not_found", "extension not found"},
	{settingsdomain.ErrSettingNotFound, http.StatusNotFound, "setting_not_found", "setting not found"},

	{insurersdomain.ErrInsurerNameTaken, http.StatusConflict, "insurer_name_taken", "insurer name already exists"},
	{policiesdomain.ErrPolicyNumberTaken, http.StatusConflict, "policy_number_taken", "policy number already exists"},

	{membersdomain.ErrInvalidMember, http.StatusBadRequest, "invalid_request", ""},
	{insurersdomain.ErrInvalidInsurer, http.StatusBadRequest, "invalid_request", ""},
	{assetsdomain.ErrInvalidAsset, http.StatusBadRequest, "invalid_request", ""},
	{policiesdomain.ErrInvalidPolicy, http.StatusBadRequest, "invalid_request", ""},
	{policiesdomain.ErrInvalidPayment, http.StatusBadRequest, "invalid_request", ""},
	{policiesdomain.ErrInvalidCoverageItem, http.StatusBadRequest, "invalid_request", ""},
	{policiesdomain.ErrInvalidBeneficiary, http.StatusBadRequest, "invalid_request", ""},
	{policiesdomain.ErrInvalidCashValue, http.StatusBadRequest, "invalid_request", ""},
	{policiesdomain.ErrInvalidExtension, http.StatusBadRequest, "invalid_request", ""},
	{settingsdomain.ErrInvalidSetting, http.StatusBadRequest, "invalid_request", ""},
	{analyticsdomain.ErrInvalidTarget, http.StatusBadRequest, "invalid_request", ""},
	{analyticsdomain.ErrInvalidMonths, http.StatusBadRequest, "invalid_request", ""},
	{analyticsdomain.ErrInvalidFilter, http.StatusBadRequest, "invalid_request", ""},
	{backupdomain.ErrInvalidBackup, http.StatusBadRequest, "invalid_backup", ""},
}

// fail maps a service error onto a response. Known domain errors are logged
// as business errors, everything else as internal.
func (h *Handlers) fail(w http.ResponseWriter, op string, err error, args ...any) {
	for _, mapping := range errorMappings {
		if !errors.Is(err, mapping.target) {
			continue
		}
		message := mapping.message
		if message == "" {
			message = err.Error()
		}
		h.log.BusinessError(op+": "+mapping.code, err, args...)
		writeError(w, mapping.status, mapping.code, message)
		return
	}
	h.log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
