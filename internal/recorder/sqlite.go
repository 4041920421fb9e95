package recorder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"PivotBoard/internal/model"
)

var _ Recorder = (*SQLiteRecorder)(nil)

// SQLiteRecorder persists price history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	path   string
	inited bool
}

// NewSQLiteRecorder opens (or creates) the SQLite database file.
// The schema is not touched until InitStorage is called.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers are not blocked by the refresh job.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return &SQLiteRecorder{db: db, path: dbPath}, nil
}

// InitStorage runs the schema migrations. Calling it again is harmless.
func (r *SQLiteRecorder) InitStorage(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	r.inited = true
	return nil
}

func (r *SQLiteRecorder) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stock_prices (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT    NOT NULL,
			date   INTEGER NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume INTEGER
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_symbol_date ON stock_prices(symbol, date)`,

		`CREATE TABLE IF NOT EXISTS stock_info (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol       TEXT NOT NULL UNIQUE,
			company_name TEXT,
			sector       TEXT,
			industry     TEXT,
			market_cap   REAL,
			exchange     TEXT,
			currency     TEXT,
			last_updated INTEGER NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) SaveBars(ctx context.Context, symbol string, bars []model.PriceBar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inited {
		return ErrNotInitialized
	}
	if len(bars) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO stock_prices
		(symbol, date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			open = excluded.open, high = excluded.high, low = excluded.low,
			close = excluded.close, volume = excluded.volume`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, dayKey(b.Time), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("upsert %s %s: %w", symbol, b.Time.Format("2006-01-02"), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	log.Debug().Str("symbol", symbol).Int("rows", len(bars)).Msg("bars saved")
	return nil
}

func (r *SQLiteRecorder) LoadBars(ctx context.Context, symbol string, from, to time.Time) ([]model.PriceBar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inited {
		return nil, ErrNotInitialized
	}

	var (
		where = []string{"symbol = ?"}
		args  = []any{symbol}
	)
	if !from.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, dayKey(from))
	}
	if !to.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, dayKey(to))
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT date, open, high, low, close, volume FROM stock_prices WHERE `+
			strings.Join(where, " AND ")+` ORDER BY date ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.PriceBar
	for rows.Next() {
		var (
			b    model.PriceBar
			date int64
		)
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(date, 0).UTC()
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (r *SQLiteRecorder) SaveInfo(ctx context.Context, info *model.StockInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inited {
		return ErrNotInitialized
	}

	updated := info.LastUpdated
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO stock_info
		(symbol, company_name, sector, industry, market_cap, exchange, currency, last_updated)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(symbol) DO UPDATE SET
			company_name = excluded.company_name, sector = excluded.sector,
			industry = excluded.industry, market_cap = excluded.market_cap,
			exchange = excluded.exchange, currency = excluded.currency,
			last_updated = excluded.last_updated`,
		info.Symbol, info.CompanyName, info.Sector, info.Industry, info.MarketCap,
		info.Exchange, info.Currency, updated.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert info %s: %w", info.Symbol, err)
	}
	return nil
}

func (r *SQLiteRecorder) GetInfo(ctx context.Context, symbol string) (*model.StockInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inited {
		return nil, ErrNotInitialized
	}

	var (
		info    = model.StockInfo{Symbol: symbol}
		updated int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT company_name, sector, industry, market_cap, exchange, currency, last_updated
		FROM stock_info WHERE symbol = ?`, symbol).
		Scan(&info.CompanyName, &info.Sector, &info.Industry, &info.MarketCap, &info.Exchange, &info.Currency, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query info %s: %w", symbol, err)
	}
	info.LastUpdated = time.Unix(updated, 0).UTC()
	return &info, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Str("path", r.path).Msg("closing sqlite recorder")
	return r.db.Close()
}

// dayKey stores a bar by its UTC calendar day.
func dayKey(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}
