package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func posted(id, number string, at time.Time, source string, accts ...string) model.JournalEntry {
	e := model.JournalEntry{ID: id, Number: number, Date: at, Source: source, Status: model.StatusPosted}
	for _, a := range accts {
		e.Lines = append(e.Lines, model.JournalLine{AccountID: a, Debit: decimal.NewFromInt(1)})
	}
	return e
}

func ids(entries []Dated) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

var fixedNow = func() time.Time { return date(2024, 6, 30) }

func TestApplyOnlyPosted(t *testing.T) {
	entries := []model.JournalEntry{
		posted("e1", "1", date(2024, 1, 5), ""),
		{ID: "e2", Number: "2", Date: date(2024, 1, 5), Status: model.StatusDraft},
		{ID: "e3", Number: "3", Date: date(2024, 1, 5), Status: model.StatusVoid},
	}
	res := Apply(entries, Criteria{}, Options{})
	assert.Equal(t, []string{"e1"}, ids(res.Entries))
}

func TestApplyInclusiveBounds(t *testing.T) {
	entries := []model.JournalEntry{
		posted("before", "1", date(2023, 12, 31), ""),
		posted("first", "2", date(2024, 1, 1), ""),
		posted("last", "3", date(2024, 1, 31).Add(23*time.Hour), ""),
		posted("after", "4", date(2024, 2, 1), ""),
	}
	res := Apply(entries, Criteria{From: date(2024, 1, 1), To: date(2024, 1, 31)}, Options{})
	assert.Equal(t, []string{"first", "last"}, ids(res.Entries))
}

func TestApplySourceSubstring(t *testing.T) {
	entries := []model.JournalEntry{
		posted("e1", "1", date(2024, 1, 1), "Fee Collection"),
		posted("e2", "2", date(2024, 1, 2), "Payroll"),
	}
	assert.Equal(t, []string{"e1"}, ids(Apply(entries, Criteria{Source: "FEE"}, Options{}).Entries))
	assert.Len(t, Apply(entries, Criteria{Source: "all"}, Options{}).Entries, 2)
	assert.Len(t, Apply(entries, Criteria{Source: ""}, Options{}).Entries, 2)
}

func TestApplyAccountAndYear(t *testing.T) {
	a := posted("e1", "1", date(2024, 1, 1), "", "1010", "4010")
	a.AcademicYearID = "AY-2024"
	b := posted("e2", "2", date(2024, 1, 2), "", "5010", "1020")
	b.AcademicYearID = "AY-2023"
	entries := []model.JournalEntry{a, b}

	assert.Equal(t, []string{"e1"}, ids(Apply(entries, Criteria{AccountID: "4010"}, Options{}).Entries))
	assert.Equal(t, []string{"e2"}, ids(Apply(entries, Criteria{AcademicYearID: "ay-2023"}, Options{}).Entries))
	assert.Empty(t, Apply(entries, Criteria{AccountID: "9999"}, Options{}).Entries)
}

func TestApplyCreatedAtFallback(t *testing.T) {
	e := posted("e1", "1", time.Time{}, "")
	e.CreatedAt = date(2024, 1, 10)
	res := Apply([]model.JournalEntry{e}, Criteria{From: date(2024, 1, 1), To: date(2024, 1, 31)}, Options{})
	require.Len(t, res.Entries, 1)
	assert.True(t, res.Entries[0].At.Equal(date(2024, 1, 10)))
	assert.Empty(t, res.Undated)
}

func TestApplyUndatedPolicies(t *testing.T) {
	entries := []model.JournalEntry{posted("nodate", "1", time.Time{}, "")}

	res := Apply(entries, Criteria{}, Options{DatePolicy: DateFallbackNow, Now: fixedNow})
	require.Len(t, res.Entries, 1)
	assert.True(t, res.Entries[0].At.Equal(fixedNow()))
	assert.Equal(t, []string{"nodate"}, res.Undated)

	// The fallback date still has to fall inside the window.
	res = Apply(entries, Criteria{To: date(2024, 1, 31)}, Options{DatePolicy: DateFallbackNow, Now: fixedNow})
	assert.Empty(t, res.Entries)
	assert.Equal(t, []string{"nodate"}, res.Undated)

	res = Apply(entries, Criteria{}, Options{DatePolicy: DateExclude})
	assert.Empty(t, res.Entries)
	assert.Equal(t, []string{"nodate"}, res.Undated)
}

func TestSortTieBreaks(t *testing.T) {
	day := date(2024, 1, 5)
	entries := []model.JournalEntry{
		posted("c", "JV-10", day, ""),
		posted("a", "JV-2", day, ""),
		posted("late", "JV-1", date(2024, 1, 6), ""),
		posted("b1", "JV-3", day, ""),
		posted("b2", "JV-3", day, ""),
		posted("early", "JV-99", date(2024, 1, 4), ""),
	}
	res := Apply(entries, Criteria{}, Options{})
	assert.Equal(t, []string{"early", "a", "b1", "b2", "c", "late"}, ids(res.Entries))

	// Same input twice gives the same order.
	again := Apply(entries, Criteria{}, Options{})
	assert.Equal(t, ids(res.Entries), ids(again.Entries))
}

func TestBefore(t *testing.T) {
	entries := []model.JournalEntry{
		posted("old", "1", date(2023, 12, 31), "Fees"),
		posted("old-other", "2", date(2023, 12, 30), "Payroll"),
		posted("in", "3", date(2024, 1, 1), "Fees"),
	}
	res := Before(entries, Criteria{From: date(2024, 1, 1), Source: "fees"}, Options{})
	assert.Equal(t, []string{"old"}, ids(res.Entries))

	assert.Empty(t, Before(entries, Criteria{}, Options{}).Entries)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"": LevelAll, "ALL": LevelAll, "main": LevelMain, " sub ": LevelSub} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("leaf")
	assert.Error(t, err)
}

func TestLevelMatch(t *testing.T) {
	main := model.Account{ID: "1"}
	sub := model.Account{ID: "2", ParentID: "1"}
	assert.True(t, LevelAll.Match(main))
	assert.True(t, LevelAll.Match(sub))
	assert.True(t, LevelMain.Match(main))
	assert.False(t, LevelMain.Match(sub))
	assert.True(t, LevelSub.Match(sub))
	assert.False(t, LevelSub.Match(main))
}

func TestParseDatePolicy(t *testing.T) {
	p, err := ParseDatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DateFallbackNow, p)
	p, err = ParseDatePolicy("Exclude")
	require.NoError(t, err)
	assert.Equal(t, DateExclude, p)
	_, err = ParseDatePolicy("guess")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-31")
	require.NoError(t, err)
	assert.True(t, d.Equal(date(2024, 1, 31)))

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("31/01/2024")
	assert.Error(t, err)
}

func TestCriteriaContains(t *testing.T) {
	c := Criteria{From: date(2024, 1, 1), To: date(2024, 1, 31)}

	assert.True(t, c.Contains(date(2024, 1, 1)))
	assert.True(t, c.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, c.Contains(date(2024, 2, 1)))
	assert.False(t, c.Contains(time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)))

	assert.True(t, Criteria{}.Contains(date(1999, 5, 5)), "open bounds")
}

func TestApplyTimestampBoundsAreExact(t *testing.T) {
	morning := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	asOf := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	entries := []model.JournalEntry{
		posted("morning", "1", morning, ""),
		posted("on-time", "2", asOf, ""),
		posted("afternoon", "3", time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC), ""),
	}

	res := Apply(entries, Criteria{To: asOf}, Options{})
	assert.Equal(t, []string{"morning", "on-time"}, ids(res.Entries))

	res = Apply(entries, Criteria{From: asOf}, Options{})
	assert.Equal(t, []string{"on-time", "afternoon"}, ids(res.Entries))

	// A bare date still covers the whole day.
	res = Apply(entries, Criteria{To: date(2024, 1, 5)}, Options{})
	assert.Len(t, res.Entries, 3)
}

func TestApplyUndatedOnlyWithinScope(t *testing.T) {
	fees := posted("fees-nodate", "1", time.Time{}, "Fee Collection", "1010")
	payroll := posted("payroll-nodate", "2", time.Time{}, "Payroll", "5010")
	entries := []model.JournalEntry{fees, payroll}

	res := Apply(entries, Criteria{Source: "fee"}, Options{DatePolicy: DateExclude})
	assert.Equal(t, []string{"fees-nodate"}, res.Undated)

	res = Apply(entries, Criteria{AccountID: "5010"}, Options{DatePolicy: DateFallbackNow, Now: fixedNow})
	assert.Equal(t, []string{"payroll-nodate"}, res.Undated)
	assert.Equal(t, []string{"payroll-nodate"}, ids(res.Entries))
}
