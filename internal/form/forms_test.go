package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Alice@example.com", NormalizeEmail("Alice@EXAMPLE.Com"))
	assert.Equal(t, "alice", NormalizeEmail(" alice "))
}

func TestSignUpFormAccumulatesErrors(t *testing.T) {
	f := NewSignUpForm()
	f.Email.Value = "not-an-email"

	ok := f.Validate("short", "different", func(string) bool { return true })
	require.False(t, ok)

	assert.NotEmpty(t, f.Name.Errors)
	// A bad format and a taken address both report at once.
	assert.Len(t, f.Email.Errors, 2)
	assert.Equal(t, []string{msgPasswordLen}, f.Password.Errors)
	assert.Equal(t, []string{msgPasswordDiff}, f.RepeatedPassword.Errors)
}

func TestSignUpFormValid(t *testing.T) {
	f := NewSignUpForm()
	f.Name.Value = "Alice"
	f.Email.Value = "alice@example.com"

	ok := f.Validate("password123", "password123", func(string) bool { return false })
	assert.True(t, ok)
}

func TestQuestionFormChoiceRules(t *testing.T) {
	tagExists := func(uint) bool { return true }

	// One content-bearing choice, none true: both rules fail together.
	f := NewQuestionForm()
	f.Content.Value = "What is 2+2?"
	f.TagID.Value = "1"
	f.Slots[0].Content.Value = "4"

	require.False(t, f.Validate(tagExists))
	assert.Equal(t, []string{msgChoiceContent, msgChoiceTrue}, f.Choices.Errors)

	// The true mark must sit on a content-bearing choice.
	f = NewQuestionForm()
	f.Content.Value = "What is 2+2?"
	f.TagID.Value = "1"
	f.Slots[0].Content.Value = "4"
	f.Slots[1].Content.Value = "5"
	f.Slots[2].IsTrue = true

	require.False(t, f.Validate(tagExists))
	assert.Equal(t, []string{msgTrueNeedContent}, f.Choices.Errors)

	// Valid shape.
	f = NewQuestionForm()
	f.Content.Value = "What is 2+2?"
	f.TagID.Value = "1"
	f.Slots[0].Content.Value = "4"
	f.Slots[0].IsTrue = true
	f.Slots[1].Content.Value = "5"

	assert.True(t, f.Validate(tagExists))
}

func TestQuestionFormUnknownTag(t *testing.T) {
	f := NewQuestionForm()
	f.Content.Value = "Q"
	f.TagID.Value = "42"
	f.Slots[0].Content.Value = "a"
	f.Slots[0].IsTrue = true
	f.Slots[1].Content.Value = "b"

	assert.False(t, f.Validate(func(uint) bool { return false }))
	assert.Equal(t, []string{msgTagUnknown}, f.TagID.Errors)
}

func TestQuestionFormImageRules(t *testing.T) {
	f := NewQuestionForm()

	// Wrong type and oversized report together.
	f.ValidateImage("application/pdf", 5<<20)
	assert.Equal(t, []string{msgImageType, msgImageSize}, f.Image.Errors)

	f = NewQuestionForm()
	f.ValidateImage("image/png", 100)
	assert.Empty(t, f.Image.Errors)
}

func TestAnswerFormSelectionRules(t *testing.T) {
	// Single-true question wants exactly one selection.
	f := NewAnswerForm()
	assert.False(t, f.Validate(4, true))
	assert.Equal(t, []string{msgSelectOne}, f.Choices.Errors)

	f = NewAnswerForm()
	f.Selected = []int{1, 2}
	assert.False(t, f.Validate(4, true))

	f = NewAnswerForm()
	f.Selected = []int{2}
	assert.True(t, f.Validate(4, true))

	// Multi-true question takes any non-empty in-range set.
	f = NewAnswerForm()
	f.Selected = []int{1, 3}
	assert.True(t, f.Validate(4, false))

	f = NewAnswerForm()
	f.Selected = []int{5}
	assert.False(t, f.Validate(4, false))
	assert.Equal(t, []string{msgSelectRange}, f.Choices.Errors)
}

func TestEvaluationFormRules(t *testing.T) {
	// Question evaluation: a rating alone is enough.
	f := NewEvaluationForm()
	f.Rating.Value = "4"
	assert.True(t, f.Validate(false))
	require.NotNil(t, f.RatingValue())
	assert.Equal(t, 4, *f.RatingValue())

	// Neither content nor rating.
	f = NewEvaluationForm()
	assert.False(t, f.Validate(false))
	assert.Equal(t, []string{msgRatingOrText}, f.Content.Errors)

	// Rating out of range.
	f = NewEvaluationForm()
	f.Rating.Value = "6"
	assert.False(t, f.Validate(false))
	assert.Equal(t, []string{msgRatingRange}, f.Rating.Errors)

	// Comment evaluation requires content and ignores ratings.
	f = NewEvaluationForm()
	f.Rating.Value = "3"
	assert.False(t, f.Validate(true))
	assert.Equal(t, []string{msgContentBlank}, f.Content.Errors)
}

func TestPasswordFormRules(t *testing.T) {
	f := NewPasswordForm()
	ok := f.Validate("wrong", "newpassword", "newpassword", func(p string) bool { return p == "right" })
	require.False(t, ok)
	assert.Equal(t, []string{msgOldPassword}, f.OldPassword.Errors)

	f = NewPasswordForm()
	ok = f.Validate("right", "newpassword", "newpassword", func(p string) bool { return p == "right" })
	assert.True(t, ok)
}

func TestRedactHydrateRoundTrip(t *testing.T) {
	f := NewSignUpForm()
	f.Name.Value = "Alice"
	f.Email.Value = "bad"
	f.Validate("short", "other", func(string) bool { return false })

	p := f.Redact()
	// Password values never enter the payload.
	assert.Empty(t, p.Fields["password"].Value)
	assert.Empty(t, p.Fields["repeated_password"].Value)

	g := NewSignUpForm()
	g.Hydrate(p)
	assert.Equal(t, "Alice", g.Name.Value)
	assert.Equal(t, "bad", g.Email.Value)
	assert.Equal(t, f.Email.Errors, g.Email.Errors)
	assert.Equal(t, f.Password.Errors, g.Password.Errors)
	// Labels come from the fresh form, not the wire payload.
	assert.Equal(t, "Email", g.Email.Label)
}

func TestQuestionFormRoundTripKeepsChoices(t *testing.T) {
	f := NewQuestionForm()
	f.Content.Value = "Q"
	f.TagID.Value = "3"
	f.Slots[0].Content.Value = "a"
	f.Slots[1].Content.Value = "b"
	f.Slots[1].IsTrue = true
	f.Validate(func(uint) bool { return true })

	g := NewQuestionForm()
	g.Hydrate(f.Redact())
	assert.Equal(t, "a", g.Slots[0].Content.Value)
	assert.Equal(t, "b", g.Slots[1].Content.Value)
	assert.False(t, g.Slots[0].IsTrue)
	assert.True(t, g.Slots[1].IsTrue)
}

func TestAnswerFormRoundTrip(t *testing.T) {
	f := NewAnswerForm()
	f.Selected = []int{2, 4}
	f.Validate(3, false)

	g := NewAnswerForm()
	g.Hydrate(f.Redact())
	assert.Equal(t, []int{2, 4}, g.Selected)
	assert.Equal(t, f.Choices.Errors, g.Choices.Errors)
}
