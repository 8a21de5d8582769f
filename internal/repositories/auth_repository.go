package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"clinic_backoffice/internal/models"

	"github.com/lib/pq"
)

// AuthRepository defines the interface for user account database operations.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(userID int64) (*models.User, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (username, email, password_hash, full_name, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	now := time.Now()

	err := executor.QueryRow(query,
		user.Username, user.Email, user.PasswordHash, user.FullName, user.Role, user.IsActive,
		now, now,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: username or email taken", ErrDuplicateKey)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return user.ID, nil
}

func (r *authRepository) GetUserByUsername(username string) (*models.User, error) {
	return r.getUser(`SELECT id, username, email, password_hash, full_name, role, is_active, created_at, updated_at
	                  FROM users WHERE username = $1`, username)
}

func (r *authRepository) GetUserByID(userID int64) (*models.User, error) {
	return r.getUser(`SELECT id, username, email, password_hash, full_name, role, is_active, created_at, updated_at
	                  FROM users WHERE id = $1`, userID)
}

func (r *authRepository) getUser(query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FullName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: getting user: %v", ErrDatabaseError, err)
	}
	return &user, nil
}
