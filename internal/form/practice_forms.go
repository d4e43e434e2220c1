package form

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ChoiceSlots is the number of choice inputs on the question form.
	ChoiceSlots = 4

	// Image constraints checked by the form; the physical write is the
	// storage provider's job.
	MaxImageBytes = 2 << 20

	msgTagRequired     = "A tag must be selected."
	msgTagUnknown      = "This tag is not valid."
	msgChoiceContent   = "At least 2 choices must have content."
	msgChoiceTrue      = "At least 1 choice must be marked as true."
	msgTrueNeedContent = "A true choice must be one of the choices with content."
	msgImageType       = "Image must be a .png or .jpeg file."
	msgImageSize       = "Image must be smaller than 2MB."
	msgSelectOne       = "Exactly one choice must be selected."
	msgSelectSome      = "At least one choice must be selected."
	msgSelectRange     = "Selections must be among the question's choices."
	msgContentBlank    = "Content must not be blank."
	msgRatingRange     = "Rating must be between 1 and 5."
	msgRatingOrText    = "Either content or a rating is required."
	msgTagTaken        = "A tag with this name already exists."
)

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpeg",
}

// ImageExtension maps an allowed content type to the stored extension.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := allowedImageTypes[contentType]
	return ext, ok
}

// ChoiceSlot is one choice input on the question form.
type ChoiceSlot struct {
	Content Field
	IsTrue  bool
}

// QuestionForm validates a new question submission. Cross-slot rules
// accumulate on the Choices group field so a submission can report
// every violated rule at once.
type QuestionForm struct {
	Content  Field
	TagID    Field
	Hashtags Field
	Image    Field
	Slots    [ChoiceSlots]ChoiceSlot
	Choices  Field
}

func NewQuestionForm() *QuestionForm {
	f := &QuestionForm{
		Content:  Field{Label: "Question"},
		TagID:    Field{Label: "Tag"},
		Hashtags: Field{Label: "Hashtags"},
		Image:    Field{Label: "Illustration"},
		Choices:  Field{Label: "Choices"},
	}
	for i := range f.Slots {
		f.Slots[i].Content.Label = fmt.Sprintf("Choice %d", i+1)
	}
	return f
}

func (f *QuestionForm) Validate(tagExists func(id uint) bool) bool {
	checkRequired(&f.Content)

	if strings.TrimSpace(f.TagID.Value) == "" {
		f.TagID.Fail(msgTagRequired)
	} else if id, err := strconv.ParseUint(f.TagID.Value, 10, 64); err != nil {
		f.TagID.Fail(msgTagUnknown)
	} else if tagExists != nil && !tagExists(uint(id)) {
		f.TagID.Fail(msgTagUnknown)
	}

	withContent := 0
	trueCount := 0
	trueWithContent := 0
	for i := range f.Slots {
		hasContent := strings.TrimSpace(f.Slots[i].Content.Value) != ""
		if hasContent {
			withContent++
		}
		if f.Slots[i].IsTrue {
			trueCount++
			if hasContent {
				trueWithContent++
			}
		}
	}
	if withContent < 2 {
		f.Choices.Fail(msgChoiceContent)
	}
	if trueCount == 0 {
		f.Choices.Fail(msgChoiceTrue)
	} else if trueWithContent == 0 {
		f.Choices.Fail(msgTrueNeedContent)
	}

	return !f.Content.Invalid() && !f.TagID.Invalid() &&
		!f.Choices.Invalid() && !f.Image.Invalid()
}

// ValidateImage checks an attached upload independently of Validate so
// a wrong type and an oversized body both surface.
func (f *QuestionForm) ValidateImage(contentType string, size int64) {
	if _, ok := ImageExtension(contentType); !ok {
		f.Image.Fail(msgImageType)
	}
	if size >= MaxImageBytes {
		f.Image.Fail(msgImageSize)
	}
}

func (f *QuestionForm) Redact() Payload {
	fields := map[string]WireField{
		"content":  f.Content.wire(),
		"tag_id":   f.TagID.wire(),
		"hashtags": f.Hashtags.wire(),
		"image":    {Errors: f.Image.Errors},
		"choices":  {Errors: f.Choices.Errors},
	}
	for i := range f.Slots {
		fields[choiceKey(i)] = f.Slots[i].Content.wire()
		if f.Slots[i].IsTrue {
			fields[choiceTrueKey(i)] = WireField{Value: "1"}
		}
	}
	return Payload{Fields: fields}
}

func (f *QuestionForm) Hydrate(p Payload) {
	f.Content.hydrate(p.Fields["content"], true)
	f.TagID.hydrate(p.Fields["tag_id"], true)
	f.Hashtags.hydrate(p.Fields["hashtags"], true)
	f.Image.hydrate(p.Fields["image"], false)
	f.Choices.hydrate(p.Fields["choices"], false)
	for i := range f.Slots {
		f.Slots[i].Content.hydrate(p.Fields[choiceKey(i)], true)
		f.Slots[i].IsTrue = p.Fields[choiceTrueKey(i)].Value == "1"
	}
}

func choiceKey(i int) string {
	return "choice_" + strconv.Itoa(i+1)
}

func choiceTrueKey(i int) string {
	return "choice_" + strconv.Itoa(i+1) + "_true"
}

// AnswerForm validates the selected choice indices against the parent
// question's shape: single-true questions take exactly one selection,
// multi-true questions take one or more.
type AnswerForm struct {
	Selected []int
	Choices  Field
}

func NewAnswerForm() *AnswerForm {
	return &AnswerForm{Choices: Field{Label: "Your answer"}}
}

func (f *AnswerForm) Validate(choiceCount int, singleChoice bool) bool {
	if len(f.Selected) == 0 {
		if singleChoice {
			f.Choices.Fail(msgSelectOne)
		} else {
			f.Choices.Fail(msgSelectSome)
		}
		return false
	}
	if singleChoice && len(f.Selected) != 1 {
		f.Choices.Fail(msgSelectOne)
	}
	for _, idx := range f.Selected {
		if idx < 1 || idx > choiceCount {
			f.Choices.Fail(msgSelectRange)
			break
		}
	}
	return !f.Choices.Invalid()
}

func (f *AnswerForm) Redact() Payload {
	values := make([]string, len(f.Selected))
	for i, idx := range f.Selected {
		values[i] = strconv.Itoa(idx)
	}
	return Payload{Fields: map[string]WireField{
		"choices": {Value: strings.Join(values, ","), Errors: f.Choices.Errors},
	}}
}

func (f *AnswerForm) Hydrate(p Payload) {
	w := p.Fields["choices"]
	for _, part := range strings.Split(w.Value, ",") {
		if idx, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			f.Selected = append(f.Selected, idx)
		}
	}
	f.Choices.Errors = append(f.Choices.Errors, w.Errors...)
}

// CommentForm validates a new comment on a question.
type CommentForm struct {
	Content Field
}

func NewCommentForm() *CommentForm {
	return &CommentForm{Content: Field{Label: "Comment"}}
}

func (f *CommentForm) Validate() bool {
	if strings.TrimSpace(f.Content.Value) == "" {
		f.Content.Fail(msgContentBlank)
	}
	return !f.Content.Invalid()
}

func (f *CommentForm) Redact() Payload {
	return Payload{Fields: map[string]WireField{"content": f.Content.wire()}}
}

func (f *CommentForm) Hydrate(p Payload) {
	f.Content.hydrate(p.Fields["content"], true)
}

// EvaluationForm validates feedback on a question or a comment. A
// question evaluation may leave content blank when a rating is given;
// a comment evaluation carries no rating at all.
type EvaluationForm struct {
	Content Field
	Rating  Field
}

func NewEvaluationForm() *EvaluationForm {
	return &EvaluationForm{
		Content: Field{Label: "Feedback"},
		Rating:  Field{Label: "Rating"},
	}
}

// RatingValue returns the parsed rating, or nil when none was given.
func (f *EvaluationForm) RatingValue() *int {
	v := strings.TrimSpace(f.Rating.Value)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func (f *EvaluationForm) Validate(targetsComment bool) bool {
	hasContent := strings.TrimSpace(f.Content.Value) != ""
	rating := strings.TrimSpace(f.Rating.Value)

	if targetsComment {
		if !hasContent {
			f.Content.Fail(msgContentBlank)
		}
		return !f.Content.Invalid()
	}

	hasRating := false
	if rating != "" {
		n, err := strconv.Atoi(rating)
		if err != nil || n < 1 || n > 5 {
			f.Rating.Fail(msgRatingRange)
		} else {
			hasRating = true
		}
	}
	if !hasContent && !hasRating && !f.Rating.Invalid() {
		f.Content.Fail(msgRatingOrText)
	}
	return !f.Content.Invalid() && !f.Rating.Invalid()
}

func (f *EvaluationForm) Redact() Payload {
	return Payload{Fields: map[string]WireField{
		"content": f.Content.wire(),
		"rating":  f.Rating.wire(),
	}}
}

func (f *EvaluationForm) Hydrate(p Payload) {
	f.Content.hydrate(p.Fields["content"], true)
	f.Rating.hydrate(p.Fields["rating"], true)
}

// TagForm validates a new question tag.
type TagForm struct {
	Name Field
}

func NewTagForm() *TagForm {
	return &TagForm{Name: Field{Label: "Tag name"}}
}

func (f *TagForm) Validate(nameTaken func(string) bool) bool {
	if checkRequired(&f.Name) {
		checkMaxLen(&f.Name, 255)
		if nameTaken != nil && nameTaken(strings.TrimSpace(f.Name.Value)) {
			f.Name.Fail(msgTagTaken)
		}
	}
	return !f.Name.Invalid()
}

func (f *TagForm) Redact() Payload {
	return Payload{Fields: map[string]WireField{"name": f.Name.wire()}}
}

func (f *TagForm) Hydrate(p Payload) {
	f.Name.hydrate(p.Fields["name"], true)
}
