package migrations

import (
	_ "embed"

	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_question_banks.sql
var createQuestionBanksSQL string

var Migrations = migrate.NewMigrations()
