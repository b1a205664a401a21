package analytics

import "errors"

var (
	ErrInvalidTarget = errors.New("coverage target must be member or asset")
	ErrInvalidMonths = errors.New("months must be between 1 and 120")
	ErrInvalidFilter = errors.New("invalid policy filter")
)
