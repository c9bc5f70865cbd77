package services

import (
	"errors"

	"macromatch-go-api/internal/strategy"
)

var (
	ErrAllSourcesFailed = errors.New("all market data sources failed")
	ErrUnknownSymbol    = errors.New("unknown symbol")

	ErrNoETFSelected     = strategy.ErrNoETFSelected
	ErrInvalidAllocation = strategy.ErrInvalidAllocation
	ErrInvalidPeriod     = strategy.ErrInvalidPeriod
)
