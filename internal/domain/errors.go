package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Fallos del ledger: lectura rechazada o vencida, escritura rechazada.
	ErrReadFailure  = errors.New("fallo de lectura en el ledger")
	ErrWriteFailure = errors.New("fallo de escritura en el ledger")
)

// LedgerError envuelve el error del almacén indicando familia y operación.
// errors.Is(err, ErrReadFailure|ErrWriteFailure) identifica el tipo; el error del driver sigue accesible.
type LedgerError struct {
	Kind   error
	Family Family
	Op     string
	Err    error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s (%s.%s): %v", e.Kind, e.Family, e.Op, e.Err)
}

// Unwrap expone tanto el tipo de fallo como la causa original.
func (e *LedgerError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// ReadFailure construye un LedgerError de lectura.
func ReadFailure(family Family, op string, err error) error {
	return &LedgerError{Kind: ErrReadFailure, Family: family, Op: op, Err: err}
}

// WriteFailure construye un LedgerError de escritura.
func WriteFailure(family Family, op string, err error) error {
	return &LedgerError{Kind: ErrWriteFailure, Family: family, Op: op, Err: err}
}
