// Package filter applies period and scope criteria to journal entries and
// fixes their chronological order.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cleared-dev/ledgerview/internal/canon"
	"github.com/cleared-dev/ledgerview/internal/id"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Level restricts account-based statements to main or sub accounts.
type Level string

const (
	LevelAll  Level = "all"
	LevelMain Level = "main"
	LevelSub  Level = "sub"
)

// ParseLevel accepts "", "all", "main" or "sub".
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case "", LevelAll:
		return LevelAll, nil
	case LevelMain:
		return LevelMain, nil
	case LevelSub:
		return LevelSub, nil
	}
	return "", fmt.Errorf("unknown account level %q", s)
}

// Match reports whether acct belongs to the level.
func (l Level) Match(acct model.Account) bool {
	switch l {
	case LevelMain:
		return acct.IsMain()
	case LevelSub:
		return !acct.IsMain()
	default:
		return true
	}
}

// DatePolicy decides what happens to an entry with neither a usable date nor
// a usable creation time.
type DatePolicy string

const (
	// DateFallbackNow dates the entry at Options.Now and flags it.
	DateFallbackNow DatePolicy = "now"
	// DateExclude drops the entry from every statement and flags it.
	DateExclude DatePolicy = "exclude"
)

// ParseDatePolicy accepts "now" (default when empty) or "exclude".
func ParseDatePolicy(s string) (DatePolicy, error) {
	switch DatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DateFallbackNow:
		return DateFallbackNow, nil
	case DateExclude:
		return DateExclude, nil
	}
	return "", fmt.Errorf("unknown date policy %q", s)
}

// Options carries caller-owned settings that influence filtering.
type Options struct {
	DatePolicy DatePolicy
	Now        func() time.Time // nil means time.Now
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Criteria are the period and scope predicates shared by all statements.
// Zero values disable a predicate. From and To are inclusive; a bound at
// midnight covers its whole day, any other bound is an exact instant.
type Criteria struct {
	From           time.Time
	To             time.Time
	Source         string // case-insensitive substring of JournalEntry.Source; "all" disables
	AccountID      string
	AcademicYearID string
}

// Dated is a posted entry with its resolved timestamp and input position.
type Dated struct {
	model.JournalEntry
	At    time.Time
	Index int
}

// Result is the filtered, chronologically ordered entry set.
type Result struct {
	Entries []Dated
	Undated []string // ids of entries without a usable date, in input order
}

// ResolveTime returns the entry timestamp: Date, else CreatedAt. ok is false
// when neither is usable.
func ResolveTime(e model.JournalEntry) (t time.Time, ok bool) {
	if !e.Date.IsZero() {
		return e.Date, true
	}
	if !e.CreatedAt.IsZero() {
		return e.CreatedAt, true
	}
	return time.Time{}, false
}

// Apply keeps the posted entries that satisfy c, sorted chronologically.
func Apply(entries []model.JournalEntry, c Criteria, opts Options) Result {
	return apply(entries, c, opts, c.inWindow)
}

// Before keeps the posted entries dated strictly before c.From that satisfy
// the non-date predicates of c. With a zero From nothing
// precedes the window and the result is empty.
func Before(entries []model.JournalEntry, c Criteria, opts Options) Result {
	if c.From.IsZero() {
		return Result{}
	}
	return apply(entries, c, opts, func(t time.Time) bool { return t.Before(c.From) })
}

func apply(entries []model.JournalEntry, c Criteria, opts Options, inWindow func(time.Time) bool) Result {
	var res Result
	var now time.Time
	for i, e := range entries {
		if !e.IsPosted() || !c.matchScope(e) {
			continue
		}
		at, ok := ResolveTime(e)
		if !ok {
			res.Undated = append(res.Undated, e.ID)
			if opts.DatePolicy == DateExclude {
				continue
			}
			if now.IsZero() {
				now = opts.now()
			}
			at = now
		}
		if !inWindow(at) {
			continue
		}
		res.Entries = append(res.Entries, Dated{JournalEntry: e, At: at, Index: i})
	}
	Sort(res.Entries)
	return res
}

// Contains reports whether t falls within the From/To bounds of c.
func (c Criteria) Contains(t time.Time) bool {
	return c.inWindow(t)
}

func (c Criteria) inWindow(t time.Time) bool {
	if !c.From.IsZero() && t.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && !t.Before(endBound(c.To)) {
		return false
	}
	return true
}

// endBound is the exclusive upper limit for an inclusive To: the next
// midnight for a bare date, the following nanosecond for a timestamp.
func endBound(to time.Time) time.Time {
	if to.Equal(dayStart(to)) {
		return to.AddDate(0, 0, 1)
	}
	return to.Add(time.Nanosecond)
}

func (c Criteria) matchScope(e model.JournalEntry) bool {
	if !MatchSource(e.Source, c.Source) {
		return false
	}
	if c.AccountID != "" && !touches(e, c.AccountID) {
		return false
	}
	if c.AcademicYearID != "" && canon.Key(e.AcademicYearID) != canon.Key(c.AcademicYearID) {
		return false
	}
	return true
}

func touches(e model.JournalEntry, accountID string) bool {
	want := canon.Key(accountID)
	for _, l := range e.Lines {
		if canon.Key(l.AccountID) == want {
			return true
		}
	}
	return false
}

// MatchSource reports whether source contains sub, ignoring case.
// An empty sub or "all" matches everything.
func MatchSource(source, sub string) bool {
	sub = strings.ToLower(strings.TrimSpace(sub))
	if sub == "" || sub == "all" {
		return true
	}
	return strings.Contains(strings.ToLower(source), sub)
}

// Sort orders entries by timestamp, then entry number, then input position.
func Sort(entries []Dated) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.At.Equal(b.At) {
			return a.At.Before(b.At)
		}
		if c := id.Compare(a.Number, b.Number); c != 0 {
			return c < 0
		}
		return a.Index < b.Index
	})
}

// Plain strips the resolved timestamps.
func Plain(entries []Dated) []model.JournalEntry {
	out := make([]model.JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = e.JournalEntry
	}
	return out
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses an ISO date ("2024-01-31") or RFC 3339 timestamp.
// The empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t := canon.ParseTime(s)
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
