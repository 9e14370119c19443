package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"account-service/internal/model"
)

const uniqueViolationCode = "23505"

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*model.User, error)
}

// UpdateUserParams holds a partial update. Nil fields keep the stored value.
type UpdateUserParams struct {
	Name      *string
	Language  *string
	Level     *string
	Reason    *string
	DailyGoal *int
	AvatarURL *string
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, language, level, reason, daily_goal, avatar_url, created_at, updated_at`

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, language, level, reason, daily_goal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		user.Name, user.Email, user.PasswordHash,
		user.Language, user.Level, user.Reason, user.DailyGoal,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// Update merges params into the stored row in a single statement. COALESCE
// keeps the current column value for every NULL argument.
func (r *postgresUserRepository) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*model.User, error) {
	var user model.User
	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			language = COALESCE($3, language),
			level = COALESCE($4, level),
			reason = COALESCE($5, reason),
			daily_goal = COALESCE($6, daily_goal),
			avatar_url = COALESCE($7, avatar_url),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	err := r.db.GetContext(ctx, &user, query,
		id, params.Name, params.Language, params.Level, params.Reason, params.DailyGoal, params.AvatarURL,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
