package repository

import (
	"strings"
	"testing"

	"github.com/artisanhub/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestContainsScopeBuildsEscapedLike(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:search_scope?mode=memory&cache=shared"), &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	var products []models.Product
	stmt := db.Where("is_active = ?", true).Scopes(containsScope(" 50%_off ", "title", "description")).Find(&products).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, `(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`) {
		t.Fatalf("unexpected sql %s", sql)
	}
	var patterns []string
	for _, v := range stmt.Vars {
		if s, ok := v.(string); ok {
			patterns = append(patterns, s)
		}
	}
	if len(patterns) != 2 || patterns[0] != `%50\%\_off%` {
		t.Fatalf("unexpected patterns %v", patterns)
	}
}

func TestContainsScopeBlankTermIsNoop(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:search_noop?mode=memory&cache=shared"), &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	var products []models.Product
	sql := db.Scopes(containsScope("   ", "title")).Find(&products).Statement.SQL.String()
	if strings.Contains(sql, "LIKE") {
		t.Fatalf("blank term should not filter: %s", sql)
	}
}

func TestLikeOperator(t *testing.T) {
	if got := likeOperator(nil); got != "LIKE" {
		t.Fatalf("nil db want LIKE got %s", got)
	}
	pg := &gorm.DB{Config: &gorm.Config{Dialector: postgres.Dialector{Config: &postgres.Config{}}}}
	if got := likeOperator(pg); got != "ILIKE" {
		t.Fatalf("postgres want ILIKE got %s", got)
	}
}
