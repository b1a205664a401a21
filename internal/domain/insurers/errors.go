package insurers

import "errors"

var (
	ErrInsurerNotFound  = errors.New("insurer not found")
	ErrInsurerNameTaken = errors.New("insurer name already exists")
	ErrInvalidInsurer   = errors.New("invalid insurer")
)
