package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Postgres valida contra una tabla users(email, password_hash) con hashes
// bcrypt. Mismo contrato que Static; el resolver no se entera del backend.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres abre el pool contra el DSN dado.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

// Validate busca el hash del email y compara con bcrypt.
// Usuario inexistente y password incorrecto retornan lo mismo (false, nil):
// el formulario nunca revela cuál de los dos falló.
func (p *Postgres) Validate(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var hash string
	err := p.pool.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE email = $1`, email,
	).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		// comparar igual contra un hash dummy para no filtrar por timing
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}

// Close libera el pool.
func (p *Postgres) Close() { p.pool.Close() }

// Ping verifica la conexión (para healthz).
func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

// dummyHash es un bcrypt válido de un valor descartable.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
