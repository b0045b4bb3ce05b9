package transform

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"degbridge/internal/genes"
	"degbridge/internal/table"
)

// SQLiteJoiner runs the join inside a private in-memory SQLite database.
// Cells are stored as TEXT and compared with the default BINARY collation, so
// matching is byte-exact like HashJoiner.
type SQLiteJoiner struct{}

func (SQLiteJoiner) Name() string { return EngineSQLite }

var sqliteSchema = []string{
	`CREATE TABLE deg (
		ord             INTEGER PRIMARY KEY,
		deg_gene_symbol TEXT NOT NULL,
		log2fc          TEXT NOT NULL,
		p_value         TEXT NOT NULL,
		p_adjusted      TEXT NOT NULL,
		regulation      TEXT NOT NULL
	)`,
	`CREATE TABLE mapping (
		ord                  INTEGER PRIMARY KEY,
		gene_id              TEXT NOT NULL,
		standard_gene_symbol TEXT NOT NULL
	)`,
	`CREATE INDEX mapping_gene_id ON mapping (gene_id)`,
}

const sqliteJoin = `
SELECT d.deg_gene_symbol, m.standard_gene_symbol, d.log2fc, d.p_value, d.p_adjusted, d.regulation
FROM deg d
JOIN mapping m ON m.gene_id = d.deg_gene_symbol
ORDER BY d.ord, m.ord`

func (SQLiteJoiner) Join(ctx context.Context, deg, mapping *table.Table) (out []Joined, retErr error) {
	left, err := degRows(deg)
	if err != nil {
		return nil, err
	}
	right, err := mappingRows(mapping)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// each connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	defer func() {
		if cerr := db.Close(); cerr != nil && retErr == nil {
			retErr = cerr
		}
	}()

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	if err := loadSQLite(ctx, db, left, right); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqliteJoin)
	if err != nil {
		return nil, fmt.Errorf("join query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var j Joined
		if err := rows.Scan(&j.DEGGeneSymbol, &j.StandardGeneSymbol, &j.Log2FC, &j.PValue, &j.PAdjusted, &j.Regulation); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("join rows: %w", err)
	}
	return out, nil
}

func loadSQLite(ctx context.Context, db *sql.DB, left []Joined, right []genes.MappingRecord) (retErr error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	insDEG, err := tx.PrepareContext(ctx,
		`INSERT INTO deg (ord, deg_gene_symbol, log2fc, p_value, p_adjusted, regulation) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare deg insert: %w", err)
	}
	defer func() { _ = insDEG.Close() }()
	for i, d := range left {
		if _, err := insDEG.ExecContext(ctx, i, d.DEGGeneSymbol, d.Log2FC, d.PValue, d.PAdjusted, d.Regulation); err != nil {
			return fmt.Errorf("insert deg row %d: %w", i+1, err)
		}
	}

	insMap, err := tx.PrepareContext(ctx,
		`INSERT INTO mapping (ord, gene_id, standard_gene_symbol) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare mapping insert: %w", err)
	}
	defer func() { _ = insMap.Close() }()
	for i, m := range right {
		if _, err := insMap.ExecContext(ctx, i, m.GeneID, m.StandardSymbol); err != nil {
			return fmt.Errorf("insert mapping row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
