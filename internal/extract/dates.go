package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateWindow is the set of dates found in a document. All is ascending;
// Issue/Expiry are the label-disambiguated candidates (zero when absent).
type DateWindow struct {
	All    []time.Time
	Issue  time.Time
	Expiry time.Time
}

func (w DateWindow) HasIssue() bool  { return !w.Issue.IsZero() }
func (w DateWindow) HasExpiry() bool { return !w.Expiry.IsZero() }

// Earliest returns the oldest date found, or zero.
func (w DateWindow) Earliest() time.Time {
	if len(w.All) == 0 {
		return time.Time{}
	}
	return w.All[0]
}

// Latest returns the most recent date found, or zero.
func (w DateWindow) Latest() time.Time {
	if len(w.All) == 0 {
		return time.Time{}
	}
	return w.All[len(w.All)-1]
}

var (
	numericDateRe = regexp.MustCompile(`(\d{1,2})[/.\- ](\d{1,2})[/.\- ](\d{2,4})`)
	monthDateRe   = regexp.MustCompile(`(?i)(\d{1,2})\s+(JANVIER|FEVRIER|MARS|AVRIL|MAI|JUIN|JUILLET|AOUT|SEPTEMBRE|OCTOBRE|NOVEMBRE|DECEMBRE)\s+(\d{4})`)
	// Identity-card expiry lines: separators are any non-digit run.
	looseDateRe = regexp.MustCompile(`(\d{1,2})\D+(\d{1,2})\D+(\d{2,4})`)

	frenchMonths = map[string]time.Month{
		"JANVIER": 1, "FEVRIER": 2, "MARS": 3, "AVRIL": 4, "MAI": 5, "JUIN": 6,
		"JUILLET": 7, "AOUT": 8, "SEPTEMBRE": 9, "OCTOBRE": 10, "NOVEMBRE": 11, "DECEMBRE": 12,
	}

	expiryLabels = []string{"VALABLE JUSQU", "EXPIR", "ECHEANCE", "JUSQU AU", "JUSQU'"}
	issueLabels  = []string{"DELIVR", "EMIS", "FAIT LE", "DATE DU", "DATE DU DOCUMENT", "ETABLI LE", "ETABLIE LE"}
)

type datedMatch struct {
	at  time.Time
	pos int
}

// Dates collects every numeric ("12/03/2025", "12-03-25") and French
// month-name ("12 mars 2025") date in the text and disambiguates issue vs
// expiry by proximity to label keywords. Without a labeled hit, Issue/Expiry
// stay zero and callers fall back to Earliest/Latest.
func Dates(text string) DateWindow {
	t := NormalizeMatch(text)

	var matches []datedMatch
	for _, loc := range numericDateRe.FindAllStringSubmatchIndex(t, -1) {
		d, ok := dayMonthYear(t[loc[2]:loc[3]], t[loc[4]:loc[5]], t[loc[6]:loc[7]])
		if ok {
			matches = append(matches, datedMatch{at: d, pos: loc[0]})
		}
	}
	for _, loc := range monthDateRe.FindAllStringSubmatchIndex(t, -1) {
		month, ok := frenchMonths[strings.ToUpper(t[loc[4]:loc[5]])]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(t[loc[2]:loc[3]])
		year, _ := strconv.Atoi(t[loc[6]:loc[7]])
		if day < 1 || day > 31 {
			continue
		}
		matches = append(matches, datedMatch{
			at:  time.Date(year, month, day, 12, 0, 0, 0, time.UTC),
			pos: loc[0],
		})
	}

	w := DateWindow{
		Expiry: dateNearLabels(t, matches, expiryLabels),
		Issue:  dateNearLabels(t, matches, issueLabels),
	}
	for _, m := range matches {
		w.All = append(w.All, m.at)
	}
	sort.Slice(w.All, func(i, j int) bool { return w.All[i].Before(w.All[j]) })
	return w
}

// dateNearLabels picks the first date occurring within 160 characters after
// one of the labels.
func dateNearLabels(text string, matches []datedMatch, labels []string) time.Time {
	for _, label := range labels {
		idx := strings.Index(text, label)
		if idx == -1 {
			continue
		}
		best := time.Time{}
		bestDist := 161
		for _, m := range matches {
			dist := m.pos - idx
			if dist >= 0 && dist < bestDist {
				best = m.at
				bestDist = dist
			}
		}
		if !best.IsZero() {
			return best
		}
	}
	return time.Time{}
}

// dayMonthYear validates and builds a date at UTC noon, promoting two-digit
// years to 2000+. Noon sidesteps timezone boundary bugs when the value is
// later rendered or compared by day.
func dayMonthYear(dd, mm, yy string) (time.Time, bool) {
	d, _ := strconv.Atoi(dd)
	m, _ := strconv.Atoi(mm)
	y, _ := strconv.Atoi(yy)
	if y < 100 {
		y += 2000
	}
	if d < 1 || d > 31 || m < 1 || m > 12 || y < 1900 || y > 2200 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.UTC), true
}

// LooseDate parses an identity-document date line where OCR may have mangled
// the separators. The result is pinned to end-of-day UTC so an expiry date is
// only "past" once the whole day is over.
func LooseDate(s string) (time.Time, bool) {
	m := looseDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	if y < 100 {
		y += 2000
	}
	if d < 1 || d > 31 || mo < 1 || mo > 12 || y < 1900 || y > 2200 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(mo), d, 23, 59, 59, 0, time.UTC), true
}

// FormatDMY renders dd-mm-yyyy, the format used in verdict payloads.
// Zero times render as the empty string.
func FormatDMY(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d-%02d-%d", t.Day(), int(t.Month()), t.Year())
}
