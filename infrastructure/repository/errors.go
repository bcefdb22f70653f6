package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrStoreUnavailable indica que a tabela de destino não existe ou que a
// conexão com o banco caiu. O arquivador usa esse tipo para decidir pelo
// caminho de fallback.
var ErrStoreUnavailable = errors.New("armazenamento indisponível")

// Classes e códigos de erro do Postgres tratados como indisponibilidade.
const (
	pqClassConnectionException = "08"
	pqCodeUndefinedTable       = "42P01"
	pqCodeCannotConnectNow     = "57P03"
)

// wrapStoreError traduz falhas de infraestrutura em ErrStoreUnavailable,
// mantendo o erro original na cadeia.
func wrapStoreError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		if pqErr.Code.Class() == pqClassConnectionException ||
			code == pqCodeUndefinedTable ||
			code == pqCodeCannotConnectNow {
			return fmt.Errorf("%w (código %s): %v", ErrStoreUnavailable, code, err)
		}
	}

	return err
}
