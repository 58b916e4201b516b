package implementation

import (
	"strings"
	"testing"

	"mcq-writer-be/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// gorm silently drops an expression handed to Order; the similarity
// ordering must go through Clauses to survive into the generated SQL.
func TestNearestOrderKeepsOrderByClause(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}

	var models []*model.TripletEmbedding
	tx := db.Clauses(nearestOrder([]float32{0.1, 0.2, 0.3})).Limit(10).Find(&models)
	sql := tx.Statement.SQL.String()

	if !strings.Contains(sql, "ORDER BY embedding_value <=>") {
		t.Fatalf("generated SQL lost the similarity ordering: %q", sql)
	}
	if !strings.Contains(sql, "LIMIT") {
		t.Errorf("generated SQL lost the limit: %q", sql)
	}
}
