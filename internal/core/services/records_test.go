package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cdcx/internal/adapters/driven/export/csv"
	"github.com/custodia-labs/cdcx/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/extract"
)

func seededStore(t *testing.T) *memory.RecordStore {
	t.Helper()
	store := memory.NewRecordStore()
	result := extract.NewWithClock(extract.Options{}, fixedClock).Extract(statementPages())
	require.NoError(t, store.AddMany(context.Background(), result.Records))
	return store
}

func TestRecordService_List(t *testing.T) {
	service := NewRecordService(seededStore(t), csv.New())

	all, err := service.List(context.Background(), domain.RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	efert, err := service.List(context.Background(), domain.RecordFilter{Symbol: "fert"})
	require.NoError(t, err)
	assert.Len(t, efert, 2)

	limited, err := service.List(context.Background(), domain.RecordFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "EFERT", limited[0].Symbol)
}

func TestRecordService_CountAndClear(t *testing.T) {
	service := NewRecordService(seededStore(t), csv.New())
	ctx := context.Background()

	count, err := service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, service.Clear(ctx))

	count, err = service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRecordService_ExportRestore(t *testing.T) {
	source := NewRecordService(seededStore(t), csv.New())
	var buf bytes.Buffer

	n, err := source.Export(context.Background(), &buf, domain.RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, strings.HasPrefix(buf.String(), "paymentDate,issueDate,symbol"))

	target := NewRecordService(memory.NewRecordStore(), csv.New())
	restored, err := target.Restore(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, restored)

	records, err := target.List(context.Background(), domain.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "HUBC", records[1].Symbol)
	assert.True(t, records[1].Net.Equal(extract.NewWithClock(extract.Options{}, fixedClock).
		Extract(statementPages()).Records[1].Net))
}

func TestRecordService_ExportFiltered(t *testing.T) {
	service := NewRecordService(seededStore(t), csv.New())
	var buf bytes.Buffer

	n, err := service.Export(context.Background(), &buf, domain.RecordFilter{Symbol: "HUBC"})

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotContains(t, buf.String(), "EFERT")
}

func TestRecordService_Restore_InvalidCSVStoresNothing(t *testing.T) {
	store := memory.NewRecordStore()
	service := NewRecordService(store, csv.New())
	input := "paymentDate,issueDate,symbol,secName,securities,gross,tax,jhTax,zakat,net,source,importedAt\n" +
		"20/08/2024,20/08/2024,EFERT,,450,1350,405,0,0,945,CDC PDF,\n" +
		"20/08/2024,20/08/2024,HUBC,,many,1350,405,0,0,945,CDC PDF,\n"

	_, err := service.Restore(context.Background(), strings.NewReader(input))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	count, _ := store.Count(context.Background())
	assert.Equal(t, 0, count)
}

func TestRecordService_StoreErrors(t *testing.T) {
	service := NewRecordService(failingStore{}, csv.New())
	ctx := context.Background()

	_, err := service.List(ctx, domain.RecordFilter{})
	assert.ErrorIs(t, err, errStoreDown)

	assert.ErrorIs(t, service.Clear(ctx), errStoreDown)

	_, err = service.Export(ctx, &bytes.Buffer{}, domain.RecordFilter{})
	assert.ErrorIs(t, err, errStoreDown)
}
