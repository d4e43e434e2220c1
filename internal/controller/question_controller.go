package controller

import (
	"strconv"

	"practice_hub_backend/internal/form"
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/moderation"
	"practice_hub_backend/internal/repository"
	"practice_hub_backend/internal/service"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/session"

	"github.com/gin-gonic/gin"
)

const questionsPath = "/api/practice/questions"

type QuestionController struct {
	QuestionService *service.QuestionService
	AnswerService   *service.AnswerService
	CommentService  *service.CommentService
	Sessions        *session.Manager
	Capsules        form.CapsuleStore
}

func NewQuestionController(questionService *service.QuestionService, answerService *service.AnswerService, commentService *service.CommentService, sessions *session.Manager, capsules form.CapsuleStore) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		AnswerService:   answerService,
		CommentService:  commentService,
		Sessions:        sessions,
		Capsules:        capsules,
	}
}

// NewView returns the blank (or revalidated) question form plus the
// tags to choose from.
func (ctl *QuestionController) NewView(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	tags, err := ctl.QuestionService.Tags()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	f := form.NewQuestionForm()
	if p, ok := takeCapsule(c, ctl.Capsules); ok {
		f.Hydrate(p)
	}

	util.Success(c, gin.H{
		"form":         f,
		"tags":         tags,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

func (ctl *QuestionController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	f := form.NewQuestionForm()
	f.Content.Value = c.PostForm("content")
	f.TagID.Value = c.PostForm("tag_id")
	f.Hashtags.Value = c.PostForm("hashtags")
	for i := range f.Slots {
		f.Slots[i].Content.Value = c.PostForm("choice_" + strconv.Itoa(i+1))
		f.Slots[i].IsTrue = c.PostForm("choice_"+strconv.Itoa(i+1)+"_true") != ""
	}

	fileHeader, fileErr := c.FormFile("image")
	contentType := ""
	if fileErr == nil {
		file, err := fileHeader.Open()
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
		contentType, err = util.DetectMimeType(file)
		file.Close()
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
		f.ValidateImage(contentType, fileHeader.Size)
	}

	valid := f.Validate(ctl.QuestionService.TagRepo.Exists)
	if !valid || f.Image.Invalid() {
		saveCapsule(c, ctl.Capsules, f.Redact(), questionsPath+"/new")
		return
	}

	imageURL := ""
	if fileErr == nil {
		ext, _ := form.ImageExtension(contentType)
		file, err := fileHeader.Open()
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
		imageURL, err = ctl.QuestionService.UploadImage(
			c.Request.Context(), file, fileHeader.Size, contentType, ext)
		file.Close()
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
	}

	choices := make(model.ChoiceList, 0, len(f.Slots))
	for i := range f.Slots {
		if content := f.Slots[i].Content.Value; content != "" {
			choices = append(choices, model.Choice{Content: content, IsTrue: f.Slots[i].IsTrue})
		}
	}

	_, err := ctl.QuestionService.Create(
		claims.UserID, util.MustParseUint(f.TagID.Value),
		f.Content.Value, f.Hashtags.Value, imageURL, choices)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	ctl.Sessions.Flash(c.Request.Context(), claims.SessionID,
		"Your question has been submitted and awaits approval.")
	util.SeeOther(c, questionsPath+"/created")
}

// Detail shows one question with its comments, the viewer's answer
// history and a fresh answer form. Invisible questions 404.
func (ctl *QuestionController) Detail(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	question, err := ctl.QuestionService.Detail(
		util.MustParseUint(c.Param("id")), claims.UserID, claims.Role)
	if err != nil {
		if err == util.ErrQuestionNotFound {
			util.NotFound(c)
		} else {
			util.LogInternalError(c, err)
		}
		return
	}

	comments, err := ctl.CommentService.ListByQuestion(question.ID, claims.Role == model.RoleAdmin)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	history, err := ctl.AnswerService.History(question.ID, claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	answerForm := form.NewAnswerForm()
	commentForm := form.NewCommentForm()
	if p, ok := takeCapsule(c, ctl.Capsules); ok {
		answerForm.Hydrate(p)
		commentForm.Hydrate(p)
	}

	util.Success(c, gin.H{
		"question":     question,
		"singleChoice": question.IsSingleChoice(),
		"comments":     comments,
		"answers":      history,
		"answerForm":   answerForm,
		"commentForm":  commentForm,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

func (ctl *QuestionController) SubmitAnswer(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	question, err := ctl.QuestionService.Detail(
		util.MustParseUint(c.Param("id")), claims.UserID, claims.Role)
	if err != nil {
		if err == util.ErrQuestionNotFound {
			util.NotFound(c)
		} else {
			util.LogInternalError(c, err)
		}
		return
	}

	detailPath := questionsPath + "/" + c.Param("id")

	f := form.NewAnswerForm()
	for _, raw := range c.PostFormArray("choices") {
		if idx, err := strconv.Atoi(raw); err == nil {
			f.Selected = append(f.Selected, idx)
		}
	}

	if !f.Validate(len(question.Choices), question.IsSingleChoice()) {
		saveCapsule(c, ctl.Capsules, f.Redact(), detailPath)
		return
	}

	answer, err := ctl.AnswerService.Submit(question, claims.UserID, f.Selected)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	message := "Your answer was wrong."
	if answer.IsCorrect {
		message = "Your answer was correct."
	}
	ctl.Sessions.Flash(c.Request.Context(), claims.SessionID, message)
	util.SeeOther(c, detailPath)
}

func (ctl *QuestionController) SubmitComment(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	question, err := ctl.QuestionService.Detail(
		util.MustParseUint(c.Param("id")), claims.UserID, claims.Role)
	if err != nil {
		if err == util.ErrQuestionNotFound {
			util.NotFound(c)
		} else {
			util.LogInternalError(c, err)
		}
		return
	}

	detailPath := questionsPath + "/" + c.Param("id")

	f := form.NewCommentForm()
	f.Content.Value = c.PostForm("content")
	if !f.Validate() {
		saveCapsule(c, ctl.Capsules, f.Redact(), detailPath)
		return
	}

	if _, err := ctl.CommentService.Create(question.ID, claims.UserID, f.Content.Value); err != nil {
		util.LogInternalError(c, err)
		return
	}

	ctl.Sessions.Flash(c.Request.Context(), claims.SessionID, "Your comment has been posted.")
	util.SeeOther(c, detailPath)
}

func (ctl *QuestionController) ListCreated(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	criteria, page, total, err := resolveListing(c, ctl.Sessions, claims.SessionID,
		listing.CtxCreatedQuestions,
		func(cr *listing.Criteria) (int64, error) {
			return ctl.QuestionService.CountCreatedBy(claims.UserID, cr)
		})
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	questions, err := ctl.QuestionService.ListCreatedBy(claims.UserID, &criteria, page)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"page":         pageResponse(questions, total, page),
		"criteria":     criteria,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

// listAnswered serves the answered/unanswered partitions, which are
// always scoped to one tag for regular users.
func (ctl *QuestionController) listAnswered(c *gin.Context, answered bool, lc listing.Context) {
	claims := util.GetUserFromContext(c)

	tag, err := ctl.QuestionService.ResolveTag(listing.ParseInt(c.Query("tag"), 0))
	if err != nil {
		if err == util.ErrNoTags {
			util.NotFound(c)
		} else {
			util.LogInternalError(c, err)
		}
		return
	}

	criteria, page, total, err := resolveListing(c, ctl.Sessions, claims.SessionID, lc,
		func(cr *listing.Criteria) (int64, error) {
			return ctl.QuestionService.CountAnswered(claims.UserID, tag.ID, answered, cr)
		})
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	questions, err := ctl.QuestionService.ListAnswered(claims.UserID, tag.ID, answered, &criteria, page)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"page":         pageResponse(questions, total, page),
		"criteria":     criteria,
		"tag":          tag,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

func (ctl *QuestionController) ListAnswered(c *gin.Context) {
	ctl.listAnswered(c, true, listing.CtxAnsweredQuestions)
}

func (ctl *QuestionController) ListUnanswered(c *gin.Context) {
	ctl.listAnswered(c, false, listing.CtxUnansweredQuestions)
}

// listByState serves the four admin partitions. Admins may scope to a
// tag with ?tag=<id> or see every tag with ?tag=-1, the default.
func (ctl *QuestionController) listByState(c *gin.Context, state model.QuestionState, lc listing.Context) {
	claims := util.GetUserFromContext(c)

	tagID := listing.ParseInt(c.Query("tag"), repository.UnscopedTag)
	if tagID <= 0 {
		tagID = repository.UnscopedTag
	}

	criteria, page, total, err := resolveListing(c, ctl.Sessions, claims.SessionID, lc,
		func(cr *listing.Criteria) (int64, error) {
			return ctl.QuestionService.CountByState(state, tagID, cr)
		})
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	questions, err := ctl.QuestionService.ListByState(state, tagID, &criteria, page)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"page":         pageResponse(questions, total, page),
		"criteria":     criteria,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

func (ctl *QuestionController) ListPending(c *gin.Context) {
	ctl.listByState(c, model.QuestionPending, listing.CtxPendingQuestions)
}

func (ctl *QuestionController) ListApproved(c *gin.Context) {
	ctl.listByState(c, model.QuestionApproved, listing.CtxApprovedQuestions)
}

func (ctl *QuestionController) ListUnapproved(c *gin.Context) {
	ctl.listByState(c, model.QuestionUnapproved, listing.CtxUnapprovedQuestions)
}

func (ctl *QuestionController) ListLocked(c *gin.Context) {
	ctl.listByState(c, model.QuestionLocked, listing.CtxLockedQuestions)
}

// Action applies one moderation action and redirects to the partition
// listing the question came from.
func (ctl *QuestionController) Action(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	message, err := ctl.QuestionService.ApplyAction(
		claims.UserID, util.MustParseUint(c.Param("id")),
		moderation.Action(c.PostForm("action")))
	switch {
	case err == nil:
	case err == util.ErrQuestionNotFound:
		util.NotFound(c)
		return
	case moderation.IsIllegal(err):
		util.BadRequest(c, err.Error())
		return
	default:
		util.LogInternalError(c, err)
		return
	}

	ctl.Sessions.Flash(c.Request.Context(), claims.SessionID, message)
	util.SeeOther(c, "/api/admin/questions/pending")
}
