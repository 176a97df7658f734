package service

import "errors"

var (
	// ErrInvalidProfile is returned when a profile field is negative,
	// non-finite, or the term is not a positive number of months.
	ErrInvalidProfile = errors.New("invalid financial profile")

	// ErrUndefinedRatio is returned when monthly income is zero, leaving the
	// debt-to-income ratio and savings rate undefined.
	ErrUndefinedRatio = errors.New("monthly income is zero, ratios are undefined")

	ErrInvalidLoan = errors.New("invalid loan input")

	// ErrInvalidRequest is returned for malformed investment or cost
	// analysis requests.
	ErrInvalidRequest = errors.New("invalid advice request")
)
