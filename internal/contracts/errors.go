package contracts

import "errors"

var (
	ErrContractNotFound = errors.New("Contract not found")
	ErrInvalidKind      = errors.New("invalid contract kind")
	ErrInvalidCommodity = errors.New("invalid commodity")
	ErrInvalidBushels   = errors.New("total bushels must be positive")
	ErrAccumulatorFields = errors.New(
		"knockout price, daily bushels, and start date are required for accumulator contracts")
)
