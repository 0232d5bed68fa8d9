package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"spacy/config"
	"spacy/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits traffic between a read replica and the primary.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type pool struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	maxRetry    int
	retryWait   time.Duration
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres
	settings := pool{
		maxOpen:     pg.MaxOpenConnections,
		maxIdle:     pg.MaxIdleConnections,
		maxLifetime: time.Duration(pg.ConnMaxLifetimeMin) * time.Minute,
		maxRetry:    max(pg.MaxRetry, 1),
		retryWait:   time.Duration(pg.RetryWaitTime) * time.Second,
	}

	return &Connection{
		Read:  connect("read", DSN(pg.Prefix, pg.Read), settings),
		Write: connect("write", DSN(pg.Prefix, pg.Write), settings),
	}
}

// DSN renders a postgres URL for endpoint. A non-empty prefix is prepended to the database name.
func DSN(prefix string, endpoint config.PostgresEndpoint) string {
	dsn := url.URL{
		Scheme: driverName,
		User:   url.UserPassword(endpoint.Username, endpoint.Password),
		Host:   net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:   "/" + prefix + endpoint.Name,
	}

	query := url.Values{}
	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	dsn.RawQuery = query.Encode()

	return dsn.String()
}

func connect(name, dsn string, settings pool) *sqlx.DB {
	for attempt := 1; attempt <= settings.maxRetry; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(settings.maxOpen)
			db.SetMaxIdleConns(settings.maxIdle)
			db.SetConnMaxLifetime(settings.maxLifetime)

			log.Info().Str("name", name).Msg("Connected to database")

			return db
		}

		log.Error().Err(err).Str("name", name).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(settings.retryWait)
	}

	log.Fatal().Str("name", name).Int("attempts", settings.maxRetry).Msg("Giving up connecting to database")

	return nil
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write database unreachable: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read database unreachable: %w", err)
	}

	return nil
}

// WithTransaction runs fn inside a write transaction, committing on success and rolling back on error or panic.
func (c *Connection) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == code
}

// IsExclusionViolation reports a rejected row from an EXCLUDE constraint, such as overlapping reservations.
func IsExclusionViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeExclusion)
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeUniqueViolation)
}
