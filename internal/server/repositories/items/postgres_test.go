package items

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/campusmarket/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var itemColumns = []string{
	"id", "title", "description", "price", "category", "condition",
	"images", "location", "tags", "is_sold", "created_at", "updated_at",
	"seller_id", "seller_name", "seller_college", "seller_avatar",
}

func itemRow(rows *sqlmock.Rows, id, title string, ts time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, title, "desc", 10.0, "Books", "Used",
		[]byte(`["http://cdn/1.jpg"]`), "Dorm A", []byte(`[]`), false, ts, ts,
		"u1", "Alice", "Engineering", "",
	)
}

func TestList_CountAndPageShareOneTransaction(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(itemColumns)
	itemRow(rows, "i1", "Algebra", now)
	itemRow(rows, "i2", "Calculus", now)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM items i JOIN users u`).
		WithArgs("Books").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`(?s)SELECT.*FROM items i JOIN users u.*ORDER BY i\.created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("Books", 2, 0).
		WillReturnRows(rows)
	mock.ExpectCommit()

	items, total, err := repo.List(context.Background(), models.ItemFilter{
		Category: "Books",
		Page:     1,
		Limit:    2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Fatalf("want total 3, got %d", total)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].ID != "i1" || items[1].ID != "i2" {
		t.Fatalf("unexpected item order: %v, %v", items[0].ID, items[1].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestList_RollsBackWhenCountFails(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM items i JOIN users u`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, _, err := repo.List(context.Background(), models.ItemFilter{})
	if err == nil || !regexp.MustCompile(`db error:`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestList_RollsBackWhenPageQueryFails(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM items i JOIN users u`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT.*ORDER BY`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, _, err := repo.List(context.Background(), models.ItemFilter{})
	if err == nil || !regexp.MustCompile(`db error:`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
