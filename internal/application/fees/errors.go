package fees

import "errors"

var (
	ErrFeeTypeNotFound = errors.New("fee type not found")
	ErrFeeNotFound     = errors.New("Fee not found")
	ErrInvalidFee      = errors.New("invalid fee")
)
