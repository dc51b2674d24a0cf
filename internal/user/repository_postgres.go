package user

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listUsersQuery = `
		SELECT id, name, email, age, created_at, updated_at
		FROM users
		ORDER BY created_at
	`
	getUserByIDQuery = `
		SELECT id, name, email, age, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	insertUserQuery = `
		INSERT INTO users (id, name, email, age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, age, created_at, updated_at
	`
	// absent patch fields come through as NULL and COALESCE keeps the
	// stored value, giving merge rather than replace semantics
	updateUserQuery = `
		UPDATE users
		SET name = COALESCE($2, name),
			email = COALESCE($3, email),
			age = COALESCE($4, age),
			updated_at = $5
		WHERE id = $1
		RETURNING id, name, email, age, created_at, updated_at
	`
	deleteUserQuery = `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, name, email, age, created_at, updated_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (User, error) {
	row := r.db.QueryRow(getUserByIDQuery, id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	if user.ID == "" {
		user.ID = NewID()
	}
	now := time.Now().UTC()

	row := r.db.QueryRow(
		insertUserQuery,
		user.ID,
		user.Name,
		user.Email,
		intArg(user.Age),
		now,
		now,
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}

	return created, nil
}

func (r *PostgresRepository) Update(id string, patch Patch) (User, error) {
	row := r.db.QueryRow(
		updateUserQuery,
		id,
		strArg(patch.Name),
		strArg(patch.Email),
		intArg(patch.Age),
		time.Now().UTC(),
	)
	updated, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(id string) (User, error) {
	row := r.db.QueryRow(deleteUserQuery, id)
	deleted, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return deleted, nil
}

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	var age sql.NullInt64

	if err := scanner.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&age,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return User{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		user.Age = &v
	}

	return user, nil
}

// unique_violation, raised by the UNIQUE constraint on users.email
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func strArg(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func intArg(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
