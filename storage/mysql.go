package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/malusev998/xrate"
)

const MySQLDateFormat = "2006-01-02"

type sqlStorage struct {
	db          *sql.DB
	tableName   string
	idGenerator IDGenerator
}

// DSN builds a MySQL connection string that scans DATE and DATETIME
// columns into time.Time.
func DSN(user, password, addr, db string) string {
	config := mysql.NewConfig()
	config.User = user
	config.Passwd = password
	config.Net = "tcp"
	config.Addr = addr
	config.DBName = db
	config.ParseTime = true
	config.Loc = time.UTC

	return config.FormatDSN()
}

func NewMySQLStorage(ctx context.Context, config MySQLConfig) (xrate.Storage, error) {
	db, err := sql.Open("mysql", config.ConnectionString)
	if err != nil {
		return nil, err
	}

	st, err := NewSQLStorage(ctx, db, config.IDGenerator, config.TableName, config.Migrate)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return st, nil
}

func NewSQLStorage(ctx context.Context, db *sql.DB, generator IDGenerator, tableName string, migrate bool) (xrate.Storage, error) {
	if !tableNameRegex.MatchString(tableName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, tableName)
	}

	if generator == nil {
		generator = uuidGenerator{}
	}

	st := sqlStorage{
		db:          db,
		tableName:   tableName,
		idGenerator: generator,
	}

	if migrate {
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	return st, nil
}

func (s sqlStorage) GetStorageProviderName() string {
	return string(MySQL)
}

func (s sqlStorage) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(
	id BINARY(16) PRIMARY KEY,
	base CHAR(3) NOT NULL,
	currency VARCHAR(10) NOT NULL,
	provider VARCHAR(50) NOT NULL,
	rate DOUBLE NOT NULL,
	rate_date DATE NOT NULL,
	created_at DATETIME(6) NOT NULL,
	INDEX %s_lookup (provider, currency, rate_date)
);`, s.tableName, s.tableName))

	return err
}

func (s sqlStorage) Drop(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", s.tableName))

	return err
}

func (s sqlStorage) Close() error {
	return s.db.Close()
}

func (s sqlStorage) Store(ctx context.Context, rates []xrate.Rate) ([]xrate.RateWithID, error) {
	result := make([]xrate.RateWithID, 0, len(rates))

	for _, rate := range rates {
		id, err := newID(s.idGenerator)
		if err != nil {
			return nil, err
		}

		if rate.CreatedAt.IsZero() {
			rate.CreatedAt = time.Now().UTC()
		}

		result = append(result, xrate.RateWithID{Rate: rate, ID: id})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s(id, base, currency, provider, rate, rate_date, created_at) VALUES (?,?,?,?,?,?,?);", s.tableName))
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	defer stmt.Close()

	for _, r := range result {
		id := r.ID.(uuid.UUID)

		_, err := stmt.ExecContext(ctx, id[:], r.Base, r.Currency, string(r.Provider), r.Rate.Rate, r.Date.Format(MySQLDateFormat), r.CreatedAt)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s sqlStorage) Get(ctx context.Context, provider xrate.Provider, currency string, date time.Time) (xrate.RateWithID, error) {
	query := fmt.Sprintf("SELECT id, base, currency, provider, rate, rate_date, created_at FROM %s WHERE provider = ? AND currency = ? AND rate_date = ? ORDER BY created_at DESC LIMIT 1;", s.tableName)

	var (
		id       []byte
		stored   xrate.Rate
		provName string
	)

	row := s.db.QueryRowContext(ctx, query, string(provider), currency, date.Format(MySQLDateFormat))

	err := row.Scan(&id, &stored.Base, &stored.Currency, &provName, &stored.Rate, &stored.Date, &stored.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return xrate.RateWithID{}, fmt.Errorf("%w: %s %s on %s", xrate.ErrRateNotStored, provider, currency, date.Format(MySQLDateFormat))
	}

	if err != nil {
		return xrate.RateWithID{}, err
	}

	uid, err := uuid.FromBytes(id)
	if err != nil {
		return xrate.RateWithID{}, err
	}

	stored.Provider = xrate.Provider(provName)

	return xrate.RateWithID{Rate: stored, ID: uid}, nil
}
