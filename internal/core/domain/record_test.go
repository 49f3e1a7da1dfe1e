package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "day first", input: "15/03/2024", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "leading zeros", input: "01/02/2023", want: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)},
		{name: "month out of range", input: "01/13/2023", wantErr: true},
		{name: "iso order", input: "2023-02-01", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReportDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestRecord_ParsedPaymentDate(t *testing.T) {
	r := Record{PaymentDate: "30/06/2024", IssueDate: "25/06/2024"}
	got, err := r.ParsedPaymentDate()
	require.NoError(t, err)
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 30, got.Day())
}

func TestExtractResult_Empty(t *testing.T) {
	assert.True(t, (&ExtractResult{}).Empty())
	assert.True(t, (&ExtractResult{Blocks: 3, Rejections: []Rejection{{Cause: ErrMissingTail}}}).Empty())
	assert.False(t, (&ExtractResult{Records: []Record{{Symbol: "X"}}}).Empty())
}

func TestAmounts_Add(t *testing.T) {
	var a Amounts
	a.Add(Record{
		Gross: decimal.RequireFromString("100.50"),
		Tax:   decimal.RequireFromString("15.00"),
		JHTax: decimal.RequireFromString("1.25"),
		Zakat: decimal.RequireFromString("2.50"),
		Net:   decimal.RequireFromString("81.75"),
	})
	a.Add(Record{
		Gross: decimal.RequireFromString("-0.50"),
		Net:   decimal.RequireFromString("-0.50"),
	})

	assert.True(t, decimal.RequireFromString("100").Equal(a.Gross))
	assert.True(t, decimal.RequireFromString("16.25").Equal(a.TaxDeducted()))
	assert.True(t, decimal.RequireFromString("2.5").Equal(a.Zakat))
	assert.True(t, decimal.RequireFromString("81.25").Equal(a.Net))
}
