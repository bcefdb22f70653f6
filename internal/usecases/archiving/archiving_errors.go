package archiving

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de arquivamento
var (
	// ErrArchivalFailed indica que a operação inteira foi revertida: nenhum
	// snapshot parcial foi gravado e a planilha não foi zerada.
	ErrArchivalFailed = errors.New("falha no arquivamento")

	// ErrLedgerUnavailable indica que a planilha viva não pôde ser lida.
	ErrLedgerUnavailable = errors.New("erro ao carregar a planilha")
)

// ArchiveError é um erro com contexto adicional para arquivamento
type ArchiveError struct {
	Err     error  // Erro base
	Op      string // Operação em curso ("daily-snapshot", "close-week")
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ArchiveError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Err.Error(), e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// NewArchiveError cria um novo ArchiveError
func NewArchiveError(err error, op string, details string) *ArchiveError {
	return &ArchiveError{
		Err:     err,
		Op:      op,
		Details: details,
	}
}
