// Package sentinel define os erros de armazenamento compartilhados pelos
// adapters postgres e in-memory, para que ambos exponham a mesma semântica
// aos handlers via errors.Is.
package sentinel

import "errors"

var (
	// ErrNotFound: id sem linha correspondente.
	ErrNotFound = errors.New("not found")

	// ErrConflict: violação de unicidade (username, nome de doença).
	ErrConflict = errors.New("conflict")

	// ErrInvalidRef: referência a unidade/doença/funcionário inexistente.
	ErrInvalidRef = errors.New("invalid reference")
)
