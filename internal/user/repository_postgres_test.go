package user

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

var userColumns = []string{"id", "name", "email", "age", "created_at", "updated_at"}

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(userColumns).
		AddRow("507f1f77bcf86cd799439011", "Ann", "ann@x.com", nil, now, now)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "Ann", "ann@x.com", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	created, err := repo.Create(User{Name: "Ann", Email: "ann@x.com"})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if created.ID != "507f1f77bcf86cd799439011" || created.Name != "Ann" || created.Age != nil {
		t.Fatalf("unexpected user %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err = repo.Create(User{Name: "Ann", Email: "taken@x.com"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(userColumns).
		AddRow("507f1f77bcf86cd799439011", "Ann", "ann@x.com", 30, now, now)
	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("507f1f77bcf86cd799439011").
		WillReturnRows(rows)

	user, err := repo.GetByID("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if user.Age == nil || *user.Age != 30 {
		t.Fatalf("age not scanned: %+v", user)
	}

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("aaaaaaaaaaaaaaaaaaaaaaaa").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID("aaaaaaaaaaaaaaaaaaaaaaaa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(userColumns).
		AddRow("507f1f77bcf86cd799439011", "Ann", "ann@x.com", nil, now, now).
		AddRow("507f1f77bcf86cd799439012", "Bob", "bob@x.com", 41, now, now)
	mock.ExpectQuery("SELECT id, name, email").WillReturnRows(rows)

	users, err := repo.List()
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Age != nil || users[1].Age == nil {
		t.Fatalf("age scanning wrong: %+v", users)
	}
}

func TestPostgresUpdate_MergesOnlyGivenFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(userColumns).
		AddRow("507f1f77bcf86cd799439011", "Ann", "ann@x.com", 5, now, now)
	// only age is patched; name and email go through as NULL
	mock.ExpectQuery("UPDATE users").
		WithArgs("507f1f77bcf86cd799439011", nil, nil, 5, sqlmock.AnyArg()).
		WillReturnRows(rows)

	age := 5
	updated, err := repo.Update("507f1f77bcf86cd799439011", Patch{Age: &age})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if updated.Name != "Ann" || updated.Email != "ann@x.com" || *updated.Age != 5 {
		t.Fatalf("unexpected merged user %+v", updated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE users").WillReturnError(sql.ErrNoRows)

	name := "Ann"
	if _, err := repo.Update("aaaaaaaaaaaaaaaaaaaaaaaa", Patch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(userColumns).
		AddRow("507f1f77bcf86cd799439011", "Ann", "ann@x.com", nil, now, now)
	mock.ExpectQuery("DELETE FROM users").
		WithArgs("507f1f77bcf86cd799439011").
		WillReturnRows(rows)

	deleted, err := repo.Delete("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if deleted.Email != "ann@x.com" {
		t.Fatalf("delete should return the removed document, got %+v", deleted)
	}

	mock.ExpectQuery("DELETE FROM users").
		WithArgs("aaaaaaaaaaaaaaaaaaaaaaaa").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Delete("aaaaaaaaaaaaaaaaaaaaaaaa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
