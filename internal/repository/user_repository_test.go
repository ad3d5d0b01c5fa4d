package repository

import (
	"errors"
	"testing"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func TestUserCreate_Success(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "hash", Role: model.Student}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected assigned id 1, got %d", user.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserCreate_DuplicateKey(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'username'"})

	err := repo.Create(&model.User{Username: "alice", Email: "alice@example.com", Password: "hash"})
	if !errors.Is(err, util.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestUserCreate_OtherDBError(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(errors.New("connection lost"))

	err := repo.Create(&model.User{Username: "bob", Email: "bob@example.com", Password: "hash"})
	if err == nil || errors.Is(err, util.ErrDuplicateUser) {
		t.Fatalf("expected raw db error, got %v", err)
	}
}

func TestUserFindByUsername_Found(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password", "role"}).
		AddRow(7, "alice", "alice@example.com", "hash", "teacher")
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WithArgs("alice", 1).
		WillReturnRows(rows)

	user, err := repo.FindByUsername("alice")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if user.ID != 7 || user.Role != model.Teacher {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserFindByUsername_NotFound(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUsername("ghost")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUserCountByRole(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByRole(model.Teacher)
	if err != nil {
		t.Fatalf("CountByRole error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3, got %d", count)
	}
}
