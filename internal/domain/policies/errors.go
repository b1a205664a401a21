package policies

import "errors"

var (
	ErrPolicyNotFound       = errors.New("policy not found")
	ErrPolicyNumberTaken    = errors.New("policy number already exists")
	ErrInvalidPolicy        = errors.New("invalid policy")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPayment       = errors.New("invalid payment")
	ErrCoverageItemNotFound = errors.New("coverage item not found")
	ErrInvalidCoverageItem  = errors.New("invalid coverage item")
	ErrInvalidBeneficiary   = errors.New("invalid beneficiary")
	ErrInvalidCashValue     = errors.New("invalid cash value")
	ErrExtensionNotFound    = errors.New("policy extension not found")
	ErrInvalidExtension     = errors.New("invalid policy extension")
)
