package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create a temporary directory for the test database
	tempDir, err := os.MkdirTemp("", "cdcx-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testRecord(symbol, gross string) domain.Record {
	return domain.Record{
		PaymentDate:  "20/08/2024",
		IssueDate:    "19/08/2024",
		Symbol:       symbol,
		SecurityName: "ENGRO FERTILIZERS LIMITED",
		Securities:   -450,
		Gross:        decimal.RequireFromString(gross),
		Tax:          decimal.RequireFromString("405.125"),
		JHTax:        decimal.RequireFromString("0"),
		Zakat:        decimal.RequireFromString("-1.50"),
		Net:          decimal.RequireFromString("945.00"),
		Source:       domain.DefaultSource,
		ImportedAt:   time.Date(2024, 9, 1, 10, 0, 0, 123000000, time.UTC),
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(filepath.Join(tempDir, "nested", "data"))
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(tempDir, "nested", "data", "records.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.RecordStore().AddMany(ctx, []domain.Record{testRecord("EFERT", "1350")}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.RecordStore().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	version, err := reopened.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestRecordStore_AddManyAndGetAll(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	records := store.RecordStore()

	withID := testRecord("HUBC", "2500")
	withID.ID = "fixed-id"

	err := records.AddMany(ctx, []domain.Record{testRecord("EFERT", "1350.00"), withID})
	require.NoError(t, err)

	all, err := records.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got := all[0]
	want := testRecord("EFERT", "1350.00")
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, want.PaymentDate, got.PaymentDate)
	assert.Equal(t, want.IssueDate, got.IssueDate)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.SecurityName, got.SecurityName)
	assert.Equal(t, want.Securities, got.Securities)
	assert.True(t, want.Gross.Equal(got.Gross))
	assert.Equal(t, "405.125", got.Tax.String())
	assert.True(t, want.Zakat.Equal(got.Zakat))
	assert.True(t, want.Net.Equal(got.Net))
	assert.Equal(t, want.Source, got.Source)
	assert.True(t, want.ImportedAt.Equal(got.ImportedAt))

	assert.Equal(t, "fixed-id", all[1].ID)
	assert.Equal(t, "HUBC", all[1].Symbol)
}

func TestRecordStore_AddMany_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	require.NoError(t, store.RecordStore().AddMany(context.Background(), nil))
}

func TestRecordStore_AddMany_DuplicateIDRollsBack(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	records := store.RecordStore()

	a := testRecord("A", "1")
	a.ID = "same"
	b := testRecord("B", "2")
	b.ID = "same"

	err := records.AddMany(ctx, []domain.Record{a, b})
	require.Error(t, err)

	n, err := records.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordStore_PreservesInsertionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	records := store.RecordStore()

	require.NoError(t, records.AddMany(ctx, []domain.Record{testRecord("ZZZ", "1"), testRecord("AAA", "2")}))
	require.NoError(t, records.AddMany(ctx, []domain.Record{testRecord("MMM", "3")}))

	all, err := records.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"ZZZ", "AAA", "MMM"}, []string{all[0].Symbol, all[1].Symbol, all[2].Symbol})
}

func TestRecordStore_Clear(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	records := store.RecordStore()

	require.NoError(t, records.AddMany(ctx, []domain.Record{testRecord("A", "1"), testRecord("B", "2")}))
	require.NoError(t, records.Clear(ctx))

	all, err := records.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	n, err := records.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordStore_CancelledContext(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.RecordStore().AddMany(ctx, []domain.Record{testRecord("A", "1")})
	assert.Error(t, err)
}
