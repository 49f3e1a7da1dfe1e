package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

func fixedClock() time.Time {
	return time.Date(2024, 9, 1, 15, 4, 5, 0, time.FixedZone("PKT", 5*60*60))
}

// statementPages mimics a two page CDC report with a wrapped name, a wrapped
// tail and one truncated row.
func statementPages() []domain.Page {
	return []domain.Page{
		{Number: 1, Fragments: []string{
			"Dividend / Zakat and Tax Deduction Report",
			"Date and Time Printed: 01/09/2024 10:00 AM",
			"UIN 4210112345678",
			"Name MUHAMMAD ALI",
			"Payment Date Issue Date Security Symbol Security Name No. of Securities",
			efertLine,
			"01/07/2024   28/06/2024 HUBC - THE HUB POWER",
			"COMPANY LIMITED 1,000 2,500.00 375.00 0.00 0.00 2,125.00",
		}},
		{Number: 2, Fragments: []string{
			"15/05/2024 10/05/2024 OGDC - OIL & GAS DEVELOPMENT 200 1,000.00 150.00 0.00",
			"0.00 850.00",
			"20/04/2024 18/04/2024 PSO - PAKISTAN STATE OIL 100 500.00 75.00 0.00 425.00",
			"Total 5,350.00 1,005.00 0.00 0.00 3,920.00",
			"End of Report",
		}},
	}
}

func TestExtractor_Lines(t *testing.T) {
	ex := NewWithClock(Options{}, fixedClock)

	result := ex.Extract(statementPages())

	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 13, result.Lines)
	assert.Equal(t, 4, result.Blocks)
	assert.False(t, result.Empty())

	require.Len(t, result.Records, 3)
	assert.Equal(t, "EFERT", result.Records[0].Symbol)
	assert.Equal(t, "HUBC", result.Records[1].Symbol)
	assert.Equal(t, "THE HUB POWER COMPANY LIMITED", result.Records[1].SecurityName)
	assert.Equal(t, "OGDC", result.Records[2].Symbol)
	assertDecimal(t, "850", result.Records[2].Net)

	require.Len(t, result.Rejections, 1)
	assert.ErrorIs(t, result.Rejections[0].Cause, domain.ErrMissingTail)
	assert.Contains(t, result.Rejections[0].Block, "PSO")

	for _, rec := range result.Records {
		assert.Equal(t, domain.DefaultSource, rec.Source)
		assert.Equal(t, time.UTC, rec.ImportedAt.Location())
		assert.True(t, fixedClock().Equal(rec.ImportedAt))
	}
}

func TestExtractor_Stream(t *testing.T) {
	ex := NewWithClock(Options{Mode: domain.SegmentStream}, fixedClock)

	result := ex.Extract(statementPages())

	assert.Equal(t, 4, result.Blocks)
	require.Len(t, result.Records, 3)
	assert.Equal(t, []string{"EFERT", "HUBC", "OGDC"}, []string{
		result.Records[0].Symbol, result.Records[1].Symbol, result.Records[2].Symbol,
	})
	require.Len(t, result.Rejections, 1)
	assert.ErrorIs(t, result.Rejections[0].Cause, domain.ErrMissingTail)
}

// pageWithHeader is one report page carrying the repeated page header.
func pageWithHeader(n int, row string) domain.Page {
	return domain.Page{Number: n, Fragments: []string{
		"Dividend / Zakat and Tax Deduction Report",
		"Date and Time Printed 01/09/2024 10:00",
		"Payment Date Issue Date Security Symbol Security Name No. of Securities",
		row,
	}}
}

func TestExtractor_StreamAcrossPages(t *testing.T) {
	pages := []domain.Page{
		pageWithHeader(1, efertLine),
		pageWithHeader(2, hubcLine),
	}

	for _, mode := range []domain.SegmentMode{domain.SegmentLines, domain.SegmentStream} {
		t.Run(mode.String(), func(t *testing.T) {
			result := NewWithClock(Options{Mode: mode}, fixedClock).Extract(pages)

			assert.Empty(t, result.Rejections)
			require.Len(t, result.Records, 2)
			assert.Equal(t, "EFERT", result.Records[0].Symbol)
			assertDecimal(t, "945", result.Records[0].Net)
			assert.Equal(t, "HUBC", result.Records[1].Symbol)
		})
	}
}

func TestExtractor_StreamSkipPrefixes(t *testing.T) {
	pages := []domain.Page{{Number: 1, Fragments: []string{
		efertLine,
		"Folio No 00123 Account Title MUHAMMAD ALI",
	}}}

	result := NewWithClock(Options{Mode: domain.SegmentStream}, fixedClock).Extract(pages)
	assert.Empty(t, result.Records)
	require.Len(t, result.Rejections, 1)

	result = NewWithClock(Options{Mode: domain.SegmentStream, SkipPrefixes: []string{"Folio No"}}, fixedClock).Extract(pages)
	assert.Empty(t, result.Rejections)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "ENGRO FERTILIZERS LIMITED", result.Records[0].SecurityName)
}

func TestExtractor_Empty(t *testing.T) {
	ex := New(Options{})

	result := ex.Extract([]domain.Page{{Number: 1, Fragments: []string{"Disclaimer", "nothing here"}}})

	assert.True(t, result.Empty())
	assert.Zero(t, result.Blocks)
	assert.Empty(t, result.Rejections)

	result = ex.Extract(nil)
	assert.True(t, result.Empty())
	assert.Zero(t, result.Pages)
}

func TestExtractor_Options(t *testing.T) {
	pages := []domain.Page{{Number: 1, Fragments: []string{
		"20/08/2024 20/08/2024 EFERT - ENGRO FERTILIZERS LIMITED NONFILER 450 1,350.00 405.00 0.00 0.00 945.00",
		"Page 1 of 1",
	}}}

	t.Run("defaults keep the suffix and treat footer as continuation", func(t *testing.T) {
		result := NewWithClock(Options{}, fixedClock).Extract(pages)
		assert.Empty(t, result.Records)
		require.Len(t, result.Rejections, 1)
		assert.ErrorIs(t, result.Rejections[0].Cause, domain.ErrMissingTail)
	})

	t.Run("skip prefixes and name cleaning", func(t *testing.T) {
		result := NewWithClock(Options{
			SkipPrefixes:      []string{"Page "},
			StripNameSuffixes: true,
			Source:            "CDC TEST",
		}, fixedClock).Extract(pages)

		require.Len(t, result.Records, 1)
		assert.Equal(t, "ENGRO FERTILIZERS LIMITED", result.Records[0].SecurityName)
		assert.Equal(t, "CDC TEST", result.Records[0].Source)
	})

	t.Run("skip prefixes without cleaning", func(t *testing.T) {
		result := NewWithClock(Options{SkipPrefixes: []string{"Page "}}, fixedClock).Extract(pages)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "ENGRO FERTILIZERS LIMITED NONFILER", result.Records[0].SecurityName)
	})
}

func TestExtractor_RejectionDoesNotAffectNeighbours(t *testing.T) {
	pages := []domain.Page{{Number: 1, Fragments: []string{
		efertLine,
		"20/08/2024 20/08/2024 EFERT - ENGRO FERTILIZERS LIMITED 450 1,350.00 405.00 0.00 945.00",
		hubcLine,
	}}}

	result := NewWithClock(Options{}, fixedClock).Extract(pages)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "EFERT", result.Records[0].Symbol)
	assert.Equal(t, "HUBC", result.Records[1].Symbol)
	assert.Len(t, result.Rejections, 1)
}

func TestRejectionCause(t *testing.T) {
	_, err := ParseBlock("nope", testProvenance)
	assert.Equal(t, domain.ErrMalformedHead, rejectionCause(err))
	assert.Equal(t, assert.AnError, rejectionCause(assert.AnError))
}
