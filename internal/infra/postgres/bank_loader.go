package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// BankLoader reads the question bank JSONB document from Postgres. The bank
// is a single document per bank name, mirroring the backup file layout.
type BankLoader struct {
	pool *pgxpool.Pool
	name string
}

// DefaultBankName is the row the serve command loads when none is
// configured.
const DefaultBankName = "default"

func NewBankLoader(pool *pgxpool.Pool, name string) *BankLoader {
	if name == "" {
		name = DefaultBankName
	}
	return &BankLoader{pool: pool, name: name}
}

func (l *BankLoader) LoadBank(ctx context.Context) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE name=$1`, l.name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load question bank %q: %w", l.name, err)
	}
	var bank []domain.Question
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("unmarshal question bank %q: %w", l.name, err)
	}
	return bank, nil
}
