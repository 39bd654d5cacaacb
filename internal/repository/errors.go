package repository

import "errors"

var (
	// ErrNotFound is returned when a lineage (or any keyed row) does not exist.
	ErrNotFound = errors.New("cotacao nao encontrada")
	// ErrVersionNotFound is returned when a lineage exists but the requested version does not.
	ErrVersionNotFound = errors.New("versao da cotacao nao encontrada")
	// ErrConcurrencyConflict is returned when the caller's version is no longer the head.
	ErrConcurrencyConflict = errors.New("a cotacao foi alterada por outro processo, recarregue o historico")
)
