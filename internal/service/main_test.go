package service

import (
	"testing"

	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repository.Migrate(db))
	return db
}

// insertPrompt stores a prompt and then forces the columns that carry
// GORM defaults, so zero values are written as given.
func insertPrompt(t *testing.T, db *gorm.DB, text, drumType string, difficulty, used int, userGenerated bool) *model.Prompt {
	t.Helper()
	p := &model.Prompt{PromptID: uuid.New(), Text: text, Difficulty: difficulty}
	if drumType != "" {
		p.DrumType = &drumType
	}
	require.NoError(t, db.Create(p).Error)
	require.NoError(t, db.Model(p).UpdateColumns(map[string]interface{}{
		"used_count":        used,
		"is_user_generated": userGenerated,
	}).Error)
	p.UsedCount = used
	p.IsUserGenerated = userGenerated
	return p
}

// firstRandomizer always picks index 0, which makes every walk deterministic.
type firstRandomizer struct{}

func (firstRandomizer) IntN(int) int { return 0 }

// scriptedRandomizer returns the queued values in order, then zeros.
type scriptedRandomizer struct {
	values []int
}

func (r *scriptedRandomizer) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
