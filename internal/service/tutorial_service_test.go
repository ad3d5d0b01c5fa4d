package service

import (
	"errors"
	"testing"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTutorialCreate_StudentRejectedInTransaction(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	svc := NewTutorialService(repository.NewTutorialRepository(db), nil, db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "role"}).
			AddRow(2, "alice", "student"))
	mock.ExpectRollback()

	tutorial := &model.Tutorial{Title: "Intro", VideoURL: "http://x/1"}
	err := svc.Create(tutorial, 2)
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTutorialCreate_TeacherInsertCommits(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	svc := NewTutorialService(repository.NewTutorialRepository(db), nil, db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "role"}).
			AddRow(1, "admin", "teacher"))
	mock.ExpectExec("INSERT INTO `tutorials`").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	tutorial := &model.Tutorial{Title: "Intro", VideoURL: "http://x/1"}
	if err := svc.Create(tutorial, 1); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if tutorial.TeacherID != 1 {
		t.Fatalf("expected teacher id 1 on tutorial, got %d", tutorial.TeacherID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTutorialGet_BumpsViewCount(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	svc := NewTutorialService(repository.NewTutorialRepository(db), nil, db)

	mock.ExpectQuery("SELECT t\\.\\*, u\\.username AS teacher_name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "view_count", "teacher_name"}).
			AddRow(1, "Intro", 9, "admin"))
	mock.ExpectExec("UPDATE `tutorials` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	tutorial, err := svc.Get(1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if tutorial.Title != "Intro" || tutorial.TeacherName != "admin" {
		t.Fatalf("unexpected tutorial: %+v", tutorial)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTutorialGet_NotFound(t *testing.T) {
	db, mock, cleanup := newGormWithMock(t)
	defer cleanup()
	svc := NewTutorialService(repository.NewTutorialRepository(db), nil, db)

	mock.ExpectQuery("SELECT t\\.\\*, u\\.username AS teacher_name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	_, err := svc.Get(42)
	if !errors.Is(err, util.ErrTutorialNotFound) {
		t.Fatalf("expected ErrTutorialNotFound, got %v", err)
	}
}
