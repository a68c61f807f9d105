package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tickrtime/internal/feature/symbollist/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Symbol{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedSymbol はテスト用の銘柄データをデータベースに作成します。
func seedSymbol(t *testing.T, db *gorm.DB, code, name string, isActive bool) *entity.Symbol {
	t.Helper()

	symbol := &entity.Symbol{Code: code, Name: name, Market: "XNAS", IsActive: isActive}
	err := db.Create(symbol).Error
	require.NoError(t, err, "failed to seed symbol")

	// SQLiteはINSERT時のboolean既定値の扱いが異なるため明示的に更新する
	err = db.Model(symbol).Update("is_active", isActive).Error
	require.NoError(t, err, "failed to set symbol active status")

	return symbol
}

func TestNewSymbolRepository(t *testing.T) {
	t.Parallel()

	repo := NewSymbolRepository(setupTestDB(t))

	assert.NotNil(t, repo, "repository should not be nil")
	assert.NotNil(t, repo.db, "database connection should not be nil")
}

func TestSymbolPostgres_ListActive(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSymbol(t, db, "NVDA", "NVIDIA CORP", true)
	seedSymbol(t, db, "AAPL", "APPLE INC", true)
	seedSymbol(t, db, "TWTR", "TWITTER INC", false)

	repo := NewSymbolRepository(db)
	out, err := repo.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 2, "inactive symbols must be excluded")
	assert.Equal(t, "AAPL", out[0].Code, "symbols should be ordered by code")
	assert.Equal(t, "NVDA", out[1].Code)
}

func TestSymbolPostgres_ListCodes(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSymbol(t, db, "AAPL", "APPLE INC", true)
	seedSymbol(t, db, "TWTR", "TWITTER INC", false)

	repo := NewSymbolRepository(db)
	codes, err := repo.ListCodes(context.Background())
	require.NoError(t, err)

	// 非アクティブも含む全コード
	assert.ElementsMatch(t, []string{"AAPL", "TWTR"}, codes)
}

func TestSymbolPostgres_UpsertBatch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSymbol(t, db, "AAPL", "OLD NAME", false)

	repo := NewSymbolRepository(db)
	err := repo.UpsertBatch(context.Background(), []entity.Symbol{
		{Code: "AAPL", Name: "APPLE INC", Market: "XNAS", IsActive: true},
		{Code: "RDDT", Name: "REDDIT INC", Market: "XNYS", IsActive: true},
	})
	require.NoError(t, err)

	var aapl entity.Symbol
	require.NoError(t, db.Where("code = ?", "AAPL").First(&aapl).Error)
	assert.Equal(t, "APPLE INC", aapl.Name, "existing symbol should be refreshed")
	assert.True(t, aapl.IsActive, "reappearing symbol should be reactivated")

	var count int64
	require.NoError(t, db.Model(&entity.Symbol{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// 空バッチはno-op
	require.NoError(t, repo.UpsertBatch(context.Background(), nil))
}

func TestSymbolPostgres_DeactivateCodes(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSymbol(t, db, "AAPL", "APPLE INC", true)
	seedSymbol(t, db, "TWTR", "TWITTER INC", true)

	repo := NewSymbolRepository(db)
	require.NoError(t, repo.DeactivateCodes(context.Background(), []string{"TWTR"}))

	var twtr entity.Symbol
	require.NoError(t, db.Where("code = ?", "TWTR").First(&twtr).Error)
	assert.False(t, twtr.IsActive, "delisted symbol should be inactive, not deleted")

	var aapl entity.Symbol
	require.NoError(t, db.Where("code = ?", "AAPL").First(&aapl).Error)
	assert.True(t, aapl.IsActive, "other symbols must be untouched")

	require.NoError(t, repo.DeactivateCodes(context.Background(), nil))
}
