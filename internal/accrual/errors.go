package accrual

import "errors"

var (
	ErrContractNotFound     = errors.New("Contract not found")
	ErrNotAccumulator       = errors.New("Contract is not an accumulator")
	ErrInvalidEntry         = errors.New("entry date and bushels marketed are required")
	ErrExceedsContractTotal = errors.New("Entry would exceed the contract's total bushels")
)
