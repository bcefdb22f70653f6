package aggregating

import "errors"

// Erros do agregador. Propagam para o chamador sem recuperação.
var (
	// ErrInvalidInput indica uma consulta com período mal formado ou
	// snapshots fora do período solicitado.
	ErrInvalidInput = errors.New("entrada inválida para agregação")
)
