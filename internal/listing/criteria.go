package listing

import (
	"strings"
	"time"
)

// Context names one listing (and therefore one session-stored criteria
// block). Using typed constants keeps the session keys from colliding.
type Context string

const (
	CtxCreatedQuestions    Context = "questions.created"
	CtxAnsweredQuestions   Context = "questions.answered"
	CtxUnansweredQuestions Context = "questions.unanswered"
	CtxPendingQuestions    Context = "questions.admin.pending"
	CtxApprovedQuestions   Context = "questions.admin.approved"
	CtxUnapprovedQuestions Context = "questions.admin.unapproved"
	CtxLockedQuestions     Context = "questions.admin.locked"
	CtxUnlockedComments    Context = "comments.admin.unlocked"
	CtxLockedComments      Context = "comments.admin.locked"
	CtxUnlockedQuestionEvals Context = "evaluations.admin.unlocked.question"
	CtxLockedQuestionEvals   Context = "evaluations.admin.locked.question"
	CtxUnlockedCommentEvals  Context = "evaluations.admin.unlocked.comment"
	CtxLockedCommentEvals    Context = "evaluations.admin.locked.comment"
	CtxUnlockedUsers       Context = "users.admin.unlocked"
	CtxLockedUsers         Context = "users.admin.locked"
	CtxQuestionTags        Context = "tags.admin"
)

// Criteria is the typed per-context filter/sort block persisted in the
// session. Contexts use the subset of fields that make sense for them;
// the rest stay zero.
type Criteria struct {
	CreatedFrom string `json:"createdFrom"` // "2006-01-02T15:04"
	CreatedTo   string `json:"createdTo"`
	Content     string `json:"content"`  // comma-separated alternatives
	Hashtag     string `json:"hashtag"`  // comma-separated alternatives
	AuthorName  string `json:"authorName"`
	AuthorCode  string `json:"authorCode"`
	Name        string `json:"name"` // user/tag listings

	SortCreatedAsc    bool `json:"sortCreatedAsc"`
	MoreAnswersFirst  bool `json:"moreAnswersFirst"`
	MoreCommentsFirst bool `json:"moreCommentsFirst"`
}

// CreatedFromTime widens the minute-precision lower bound to the start
// of its second.
func (c *Criteria) CreatedFromTime() (time.Time, bool) {
	return parseBound(c.CreatedFrom, ":00")
}

// CreatedToTime widens the minute-precision upper bound to the end of
// its minute.
func (c *Criteria) CreatedToTime() (time.Time, bool) {
	return parseBound(c.CreatedTo, ":59")
}

func parseBound(raw, seconds string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02T15:04:05", raw+seconds)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SplitAlternatives breaks a comma-separated filter value into trimmed,
// non-empty alternatives.
func SplitAlternatives(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ContainsAny builds a case-insensitive "matches any alternative"
// predicate over one column: alternatives OR together inside the
// clause, and the caller ANDs clauses of different criteria.
func ContainsAny(column, raw string) (string, []interface{}, bool) {
	alts := SplitAlternatives(raw)
	if len(alts) == 0 {
		return "", nil, false
	}
	parts := make([]string, len(alts))
	args := make([]interface{}, len(alts))
	for i, alt := range alts {
		parts[i] = "LOWER(" + column + ") LIKE ?"
		args[i] = "%" + strings.ToLower(alt) + "%"
	}
	return "(" + strings.Join(parts, " OR ") + ")", args, true
}
