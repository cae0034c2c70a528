// Package capture turns quick-capture text into the fields of a new task.
//
// Parsing is advisory: anything that cannot be resolved stays in the title
// untouched. The parser never touches the task store; callers turn the
// Result into an add-task call.
package capture

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/domain"
)

// Marker prefixes and words.
const (
	projectPrefix = '#'

	markerHigh     = "!high"
	markerUrgent   = "!urgent"
	markerLow      = "!low"
	markerToday    = "@today"
	markerTomorrow = "@tomorrow"
)

// Context is the snapshot of caller state the parser resolves against.
type Context struct {
	// Projects are the candidates for a #name reference, in display order.
	Projects []domain.Project
	// ProjectID is the project already selected, kept when the text names none.
	ProjectID string
	// Tags pass through to the Result unchanged.
	Tags []string
	// Today anchors @today and @tomorrow. Date markers are left in the
	// title when it is zero.
	Today calendar.Day
}

// Result is the structured form of the captured text.
type Result struct {
	Title     string          `json:"title"`
	ProjectID string          `json:"project_id,omitempty"`
	Priority  domain.Priority `json:"priority,omitempty"`
	DueDate   *calendar.Day   `json:"due_date,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
}

// Punctuation that may surround a marker without hiding it, as in
// "Fix !high, asap" or "Ship (#backend)".
const (
	leadingPunct  = "("
	trailingPunct = ",.;:)"
)

// token is one whitespace-delimited word. mark is the word without
// surrounding punctuation and [markStart, markEnd) its byte range in the input.
type token struct {
	start, end         int
	text               string
	mark               string
	markStart, markEnd int
}

// wrapped reports whether the word is a marker in parentheses, which is
// removed together with them.
func (t token) wrapped() bool {
	return t.markStart > t.start && t.text[0] == '(' && t.text[len(t.text)-1] == ')'
}

func newToken(s string, start, end int) token {
	text := s[start:end]
	mark := strings.TrimRight(strings.TrimLeft(text, leadingPunct), trailingPunct)
	if mark == "" {
		return token{start: start, end: end, text: text, mark: text, markStart: start, markEnd: end}
	}
	markStart := start + strings.Index(text, mark)
	return token{start: start, end: end, text: text, mark: mark, markStart: markStart, markEnd: markStart + len(mark)}
}

// Parse extracts a project reference, a priority and a relative due date
// from raw and returns the remaining text as the title.
//
// Only the first #name token is considered. It resolves to the project whose
// id equals name, or else to the first project whose name starts with name,
// ignoring case. !high and !urgent both mean high priority; when !low is
// also present it wins. @tomorrow wins over @today. A marker may carry a
// leading "(" or trailing ",.;:)". Recognized markers are removed from the
// title along with the whitespace before them.
func Parse(raw string, ctx Context) Result {
	res := Result{ProjectID: ctx.ProjectID}
	if len(ctx.Tags) > 0 {
		res.Tags = append([]string(nil), ctx.Tags...)
	}

	folder := cases.Fold()
	tokens := split(raw)
	drop := make([]bool, len(tokens))
	projectSeen := false

	for i, tok := range tokens {
		if tok.mark[0] == projectPrefix && len(tok.mark) > 1 {
			if projectSeen {
				continue
			}
			projectSeen = true
			if id, ok := resolveProject(tok.mark[1:], ctx.Projects, folder); ok {
				res.ProjectID = id
				drop[i] = true
			}
			continue
		}

		switch strings.ToLower(tok.mark) {
		case markerHigh, markerUrgent:
			if res.Priority != domain.PriorityLow {
				res.Priority = domain.PriorityHigh
			}
			drop[i] = true
		case markerLow:
			res.Priority = domain.PriorityLow
			drop[i] = true
		case markerToday:
			if ctx.Today.IsZero() {
				continue
			}
			if res.DueDate == nil {
				due := ctx.Today
				res.DueDate = &due
			}
			drop[i] = true
		case markerTomorrow:
			if ctx.Today.IsZero() {
				continue
			}
			due := ctx.Today.AddDays(1)
			res.DueDate = &due
			drop[i] = true
		}
	}

	res.Title = strip(raw, tokens, drop)
	return res
}

// resolveProject matches name against projects: an exact id first, then the
// first case-insensitive name prefix.
func resolveProject(name string, projects []domain.Project, folder cases.Caser) (string, bool) {
	for _, p := range projects {
		if p.ID == name {
			return p.ID, true
		}
	}
	want := folder.String(name)
	for _, p := range projects {
		if strings.HasPrefix(folder.String(p.Name), want) {
			return p.ID, true
		}
	}
	return "", false
}

// split returns the whitespace-delimited words of s with their byte offsets.
func split(s string) []token {
	var tokens []token
	start := -1
	for i, r := range s {
		switch {
		case unicode.IsSpace(r) && start >= 0:
			tokens = append(tokens, newToken(s, start, i))
			start = -1
		case !unicode.IsSpace(r) && start < 0:
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, newToken(s, start, len(s)))
	}
	return tokens
}

// strip removes the dropped markers, then trims the result. A marker that
// starts its word takes the whitespace before it along; punctuation after it
// stays, except for the closing parenthesis of a wrapped marker.
func strip(raw string, tokens []token, drop []bool) string {
	var b strings.Builder
	b.Grow(len(raw))
	prev := 0
	for i, tok := range tokens {
		if !drop[i] {
			continue
		}
		from, to := tok.markStart, tok.markEnd
		if tok.wrapped() {
			from, to = tok.start, tok.end
		}
		if from > tok.start {
			b.WriteString(raw[prev:from])
		} else {
			b.WriteString(strings.TrimRightFunc(raw[prev:from], unicode.IsSpace))
		}
		prev = to
	}
	b.WriteString(raw[prev:])
	return strings.TrimSpace(b.String())
}
