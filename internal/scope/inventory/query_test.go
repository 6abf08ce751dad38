package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/dsjohal14/stockroom/internal/scope/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleLines = []string{
	"widget,12",
	"hex bolt,40",
	"nocommahere widget",
	"widget spring,3",
	"",
	"washer,100",
}

func TestFindMatches(t *testing.T) {
	svc := NewService(nil)

	got := svc.FindMatches(sampleLines, "widget")
	assert.Equal(t, []Record{
		{Particulars: "widget", Quantity: "12"},
		{Particulars: "widget spring", Quantity: "3"},
	}, got)
}

func TestFindMatchesSingleRecord(t *testing.T) {
	svc := NewService(search.Default())
	got := svc.FindMatches([]string{"widget,12"}, "widget")
	assert.Equal(t, []Record{{Particulars: "widget", Quantity: "12"}}, got)
}

func TestFindMatchesMalformedLineSkipped(t *testing.T) {
	svc := NewService(nil)
	line := "nocommahere"

	require.NotEmpty(t, search.Search(line, "comma"))
	assert.Empty(t, svc.FindMatches([]string{line}, "comma"))

	res, err := svc.Query(context.Background(), []string{line}, "comma")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Records)
}

func TestFindMatchesIncludeMalformed(t *testing.T) {
	svc := NewService(nil, WithMalformedPolicy(IncludeMalformed))
	got := svc.FindMatches(sampleLines, "widget")
	assert.Equal(t, []Record{
		{Particulars: "widget", Quantity: "12"},
		{Particulars: "nocommahere widget", Quantity: ""},
		{Particulars: "widget spring", Quantity: "3"},
	}, got)
}

func TestFindMatchesMatchesWholeLine(t *testing.T) {
	// The matcher runs over the raw line, so quantity text matches too.
	svc := NewService(nil)
	got := svc.FindMatches(sampleLines, "100")
	assert.Equal(t, []Record{{Particulars: "washer", Quantity: "100"}}, got)
}

func TestFindMatchesEmptyPattern(t *testing.T) {
	svc := NewService(nil)
	assert.Empty(t, svc.FindMatches(sampleLines, ""))
}

func TestParseMalformedPolicy(t *testing.T) {
	p, ok := ParseMalformedPolicy("include")
	assert.True(t, ok)
	assert.Equal(t, IncludeMalformed, p)

	p, ok = ParseMalformedPolicy("")
	assert.True(t, ok)
	assert.Equal(t, SkipMalformed, p)

	_, ok = ParseMalformedPolicy("drop")
	assert.False(t, ok)
}

func TestQueryParallelPreservesOrder(t *testing.T) {
	lines := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		switch i % 3 {
		case 0:
			lines = append(lines, fmt.Sprintf("part-%04d,%d", i, i))
		case 1:
			lines = append(lines, fmt.Sprintf("other-%04d,%d", i, i))
		default:
			lines = append(lines, fmt.Sprintf("part-%04d without comma", i))
		}
	}

	serial := NewService(nil)
	parallel := NewService(nil, WithWorkers(4), WithBatchSize(37))

	want, err := serial.Query(context.Background(), lines, "part-")
	require.NoError(t, err)
	got, err := parallel.Query(context.Background(), lines, "part-")
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, 1000, got.Scanned)
	assert.Equal(t, 667, got.Matched)
	assert.Equal(t, 333, got.Skipped)
	require.Len(t, got.Records, 334)
	assert.Equal(t, "part-0000", got.Records[0].Particulars)
	assert.Equal(t, "part-0999", got.Records[333].Particulars)
}

func TestQueryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(nil).Query(ctx, sampleLines, "widget")
	assert.ErrorIs(t, err, context.Canceled)
}
