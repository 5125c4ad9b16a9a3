package services

import "errors"

var (
	// ErrNotFound is returned when an id does not resolve to a record.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownStudent is returned when a child record references a
	// student id that does not exist.
	ErrUnknownStudent = errors.New("unknown student")

	// ErrUnknownProduct rejects a movement referencing a product that does
	// not exist. The movement is not applied at all.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrInsufficientStock rejects an outbound movement that would drive a
	// product quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
