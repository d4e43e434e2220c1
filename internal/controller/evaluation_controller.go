package controller

import (
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

const evaluationsPath = "/api/practice/evaluations"

type EvaluationController struct {
	EvaluationService *service.EvaluationService
	QuestionService   *service.QuestionService
	CommentRepo       *repository.CommentRepository
	Sessions          *session.Manager
	Capsules          form.CapsuleStore
}

func NewEvaluationController(evaluationService *service.EvaluationService, questionService *service.QuestionService, commentRepo *repository.CommentRepository, sessions *session.Manager, capsules form.CapsuleStore) *EvaluationController {
	return &EvaluationController{
		EvaluationService: evaluationService,
		QuestionService:   questionService,
		CommentRepo:       commentRepo,
		Sessions:          sessions,
		Capsules:          capsules,
	}
}

// canEvaluate reports whether the target still accepts evaluations:
// the question must be approved, and a targeted comment must not be
// locked. Anything else reads as absent.
func canEvaluate(question *model.Question, comment *model.Comment) bool {
	if question.State != model.QuestionApproved {
		return false
	}
	return comment == nil || comment.State == model.CommentNormal
}

// resolveTarget locates what the evaluation is about: a comment when
// ?comment= is present, the question itself otherwise. The question
// must be visible to the evaluator either way.
func (ctl *EvaluationController) resolveTarget(c *gin.Context) (questionID uint, commentID *uint, ok bool) {
	claims := util.GetUserFromContext(c)

	var comment *model.Comment
	if raw := firstNonEmpty(c.Query("comment"), c.PostForm("comment_id")); raw != "" {
		found, err := ctl.CommentRepo.FindByID(util.MustParseUint(raw))
		if err != nil {
			if repository.IsNotFound(err) {
				util.NotFound(c)
			} else {
				util.LogInternalError(c, err)
			}
			return 0, nil, false
		}
		comment = found
		questionID = comment.QuestionID
		commentID = &comment.ID
	} else {
		questionID = util.MustParseUint(firstNonEmpty(c.Query("question"), c.PostForm("question_id")))
	}

	question, err := ctl.QuestionService.Detail(questionID, claims.UserID, claims.Role)
	if err != nil {
		if err == util.ErrQuestionNotFound {
			util.NotFound(c)
		} else {
			util.LogInternalError(c, err)
		}
		return 0, nil, false
	}
	if !canEvaluate(question, comment) {
		util.NotFound(c)
		return 0, nil, false
	}
	return questionID, commentID, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (ctl *EvaluationController) NewView(c *gin.Context) {
	questionID, commentID, ok := ctl.resolveTarget(c)
	if !ok {
		return
	}

	f := form.NewEvaluationForm()
	if p, ok := takeCapsule(c, ctl.Capsules); ok {
		f.Hydrate(p)
	}

	util.Success(c, gin.H{
		"form":       f,
		"questionId": questionID,
		"commentId":  commentID,
	})
}

func (ctl *EvaluationController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	questionID, commentID, ok := ctl.resolveTarget(c)
	if !ok {
		return
	}

	f := form.NewEvaluationForm()
	f.Content.Value = c.PostForm("content")
	f.Rating.Value = c.PostForm("rating")

	if !f.Validate(commentID != nil) {
		backTo := evaluationsPath + "/new?question=" + c.PostForm("question_id")
		if commentID != nil {
			backTo = evaluationsPath + "/new?comment=" + c.PostForm("comment_id")
		}
		saveCapsule(c, ctl.Capsules, f.Redact(), backTo)
		return
	}

	_, err := ctl.EvaluationService.Create(
		claims.UserID, questionID, commentID, f.Content.Value, f.RatingValue())
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	ctl.Sessions.Flash(c.Request.Context(), claims.SessionID,
		"Your evaluation has been submitted.")
	util.SeeOther(c, questionsPath+"/"+util.FormatUint(questionID))
}

func (ctl *EvaluationController) listByState(c *gin.Context, state model.EvaluationState, targetsComment bool, lc listing.Context) {
	claims := util.GetUserFromContext(c)
	criteria, page, total, err := resolveListing(c, ctl.Sessions, claims.SessionID, lc,
		func(cr *listing.Criteria) (int64, error) {
			return ctl.EvaluationService.CountByState(state, targetsComment, cr)
		})
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	evaluations, err := ctl.EvaluationService.ListByState(state, targetsComment, &criteria, page)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"page":         pageResponse(evaluations, total, page),
		"criteria":     criteria,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

func (ctl *EvaluationController) ListPendingForQuestions(c *gin.Context) {
	ctl.listByState(c, model.EvaluationPending, false, listing.CtxUnlockedQuestionEvals)
}

func (ctl *EvaluationController) ListLockedForQuestions(c *gin.Context) {
	ctl.listByState(c, model.EvaluationLocked, false, listing.CtxLockedQuestionEvals)
}

func (ctl *EvaluationController) ListPendingForComments(c *gin.Context) {
	ctl.listByState(c, model.EvaluationPending, true, listing.CtxUnlockedCommentEvals)
}

func (ctl *EvaluationController) ListLockedForComments(c *gin.Context) {
	ctl.listByState(c, model.EvaluationLocked, true, listing.CtxLockedCommentEvals)
}

func (ctl *EvaluationController) Action(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	message, err := ctl.EvaluationService.ApplyAction(
		claims.UserID, util.MustParseUint(c.Param("id")),
		moderation.Action(c.PostForm("action")))
	switch {
	case err == nil:
	case err == util.ErrEvaluationNotFound:
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
	util.SeeOther(c, "/api/admin/evaluations/questions/pending")
}
