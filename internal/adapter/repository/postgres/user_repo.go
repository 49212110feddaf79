package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

const userColumns = `id, username, email, full_name, hashed_password, active, created_at`

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user inside the given transaction. A registration
// that slips past the pre-insert existence check still hits the unique
// indexes on username and email, which surfaces as ErrDuplicateRegistration.
func (r *UserRepository) Create(ctx context.Context, tx usecase.Tx, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx(tx).Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.HashedPassword,
		user.Active,
		timeToPgTimestamptz(user.CreatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateRegistration
	}

	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	return scanUser(r.pool.QueryRow(ctx, query, username))
}

// ExistsByUsernameOrEmail reports whether either unique field is taken.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, username, email).Scan(&exists)

	return exists, err
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user      domain.User
		fullName  pgtype.Text
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&fullName,
		&user.HashedPassword,
		&user.Active,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	user.FullName = fullName.String
	user.CreatedAt = createdAt.Time

	return &user, nil
}
