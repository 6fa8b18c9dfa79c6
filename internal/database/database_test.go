package database

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
)

type queryRecord struct {
	operation string
	table     string
	err       error
}

type mockMetricsRecorder struct {
	mu      sync.Mutex
	queries []queryRecord
	stats   []sql.DBStats
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, queryRecord{operation: operation, table: table, err: err})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := stats.(sql.DBStats); ok {
		m.stats = append(m.stats, s)
	}
}

func (m *mockMetricsRecorder) operations(table string) []string {
	var ops []string
	for _, q := range m.queries {
		if q.table == table {
			ops = append(ops, q.operation)
		}
	}
	return ops
}

func openTestDB(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Driver:       DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

func TestNew_SQLiteAndMigrate(t *testing.T) {
	db, err := New(*openTestDB(t))
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db, zap.NewNop()))

	for _, table := range []string{"users", "boards", "columns", "cards", "board_shares"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&domain.Card{}, "idx_cards_column_position"))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(Config{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}

func TestRegisterMetricsCallbacks(t *testing.T) {
	db, err := New(*openTestDB(t))
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, AutoMigrate(db, zap.NewNop()))

	recorder := &mockMetricsRecorder{}
	require.NoError(t, RegisterMetricsCallbacks(db, recorder))

	user := domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	var found domain.User
	require.NoError(t, db.First(&found, "id = ?", user.ID).Error)

	require.NoError(t, db.Model(&found).Update("dark_mode", true).Error)
	require.NoError(t, db.Delete(&found).Error)

	assert.Equal(t, []string{"insert", "select", "update", "delete"}, recorder.operations("users"))
	for _, q := range recorder.queries {
		assert.NoError(t, q.err)
	}
}

func TestRegisterMetricsCallbacks_RecordsErrors(t *testing.T) {
	db, err := New(*openTestDB(t))
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, AutoMigrate(db, zap.NewNop()))

	recorder := &mockMetricsRecorder{}
	require.NoError(t, RegisterMetricsCallbacks(db, recorder))

	var found domain.User
	err = db.First(&found, "id = ?", uuid.New()).Error
	require.Error(t, err)

	require.NotEmpty(t, recorder.queries)
	last := recorder.queries[len(recorder.queries)-1]
	assert.Equal(t, "select", last.operation)
	assert.Error(t, last.err)
}

func TestStartDBStatsCollector(t *testing.T) {
	db, err := New(*openTestDB(t))
	require.NoError(t, err)
	defer Close(db)

	recorder := &mockMetricsRecorder{}
	done := StartDBStatsCollector(db, recorder, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(done)

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	assert.NotEmpty(t, recorder.stats)
}
