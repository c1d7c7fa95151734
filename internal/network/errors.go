package network

import (
	"errors"
	"fmt"
	"strings"
)

// KernelError represents an error surfaced by a public network
// operation.
//
// Kernel errors include:
//   - Unknown cell references (single or batch)
//   - Missing informant on add_content
//   - Lattice-kind mismatch between a value and its cell
//   - Firing budget exhaustion on an ill-formed constraint graph
//
// KernelError includes structured fields for diagnostics.
type KernelError struct {
	// Code identifies the error category.
	Code KernelErrorCode

	// Message is a human-readable description.
	Message string

	// Cells lists the affected cell ids, if any.
	Cells []CellID

	// Informant identifies the belief source involved, if any.
	Informant string
}

// KernelErrorCode categorizes kernel errors.
type KernelErrorCode string

const (
	// ErrCodeCellNotFound indicates a reference to an unknown cell id.
	ErrCodeCellNotFound KernelErrorCode = "CELL_NOT_FOUND"

	// ErrCodeInformantRequired indicates add_content without an
	// informant. Hard reject: every belief must be traceable.
	ErrCodeInformantRequired KernelErrorCode = "INFORMANT_REQUIRED"

	// ErrCodeLatticeMismatch indicates a value written to a cell of a
	// different lattice kind.
	ErrCodeLatticeMismatch KernelErrorCode = "LATTICE_MISMATCH"

	// ErrCodeReservedInformant indicates an attempt to use the truth
	// maintenance system's assumption informant as a belief source or
	// propagator informant. Derived justifications must never carry it.
	ErrCodeReservedInformant KernelErrorCode = "RESERVED_INFORMANT"

	// ErrCodeFiringBudgetExceeded indicates a propagation cascade
	// exceeded the per-operation firing budget.
	ErrCodeFiringBudgetExceeded KernelErrorCode = "FIRING_BUDGET_EXCEEDED"
)

// Error implements the error interface.
func (e *KernelError) Error() string {
	switch {
	case len(e.Cells) > 0 && e.Informant != "":
		return fmt.Sprintf("%s: %s (cells=%s, informant=%s)", e.Code, e.Message, formatCells(e.Cells), e.Informant)
	case len(e.Cells) > 0:
		return fmt.Sprintf("%s: %s (cells=%s)", e.Code, e.Message, formatCells(e.Cells))
	case e.Informant != "":
		return fmt.Sprintf("%s: %s (informant=%s)", e.Code, e.Message, e.Informant)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func formatCells(cells []CellID) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, ",")
}

// cellNotFound builds the error for a single unknown cell.
func cellNotFound(id CellID) *KernelError {
	return &KernelError{
		Code:    ErrCodeCellNotFound,
		Message: "cell not found",
		Cells:   []CellID{id},
	}
}

// cellsNotFound builds the error for a batch of unknown cells
// (propagator creation validates all input ids at once).
func cellsNotFound(ids []CellID) *KernelError {
	return &KernelError{
		Code:    ErrCodeCellNotFound,
		Message: "cells not found",
		Cells:   ids,
	}
}

// IsCellNotFound returns true if the error reports unknown cell ids.
// Uses errors.As to handle wrapped errors.
func IsCellNotFound(err error) bool {
	var ke *KernelError
	if errors.As(err, &ke) {
		return ke.Code == ErrCodeCellNotFound
	}
	return false
}

// IsInformantRequired returns true if the error is a missing-informant
// rejection.
func IsInformantRequired(err error) bool {
	var ke *KernelError
	if errors.As(err, &ke) {
		return ke.Code == ErrCodeInformantRequired
	}
	return false
}

// IsLatticeMismatch returns true if the error is a lattice-kind
// mismatch rejection.
func IsLatticeMismatch(err error) bool {
	var ke *KernelError
	if errors.As(err, &ke) {
		return ke.Code == ErrCodeLatticeMismatch
	}
	return false
}

// IsReservedInformant returns true if the error is a reserved
// informant rejection.
func IsReservedInformant(err error) bool {
	var ke *KernelError
	if errors.As(err, &ke) {
		return ke.Code == ErrCodeReservedInformant
	}
	return false
}

// IsFiringBudgetExceeded returns true if the error reports an
// exhausted firing budget.
func IsFiringBudgetExceeded(err error) bool {
	var ke *KernelError
	if errors.As(err, &ke) {
		return ke.Code == ErrCodeFiringBudgetExceeded
	}
	return false
}
