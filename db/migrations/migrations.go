package migrations

import "embed"

// FS embarca os arquivos SQL lidos pelo golang-migrate através do driver iofs
//
//go:embed *.sql
var FS embed.FS
