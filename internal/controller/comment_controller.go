package controller

import (
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/moderation"
	"practice_hub_backend/internal/service"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/session"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	CommentService *service.CommentService
	Sessions       *session.Manager
}

func NewCommentController(commentService *service.CommentService, sessions *session.Manager) *CommentController {
	return &CommentController{CommentService: commentService, Sessions: sessions}
}

func (ctl *CommentController) listByState(c *gin.Context, state model.CommentState, lc listing.Context) {
	claims := util.GetUserFromContext(c)
	criteria, page, total, err := resolveListing(c, ctl.Sessions, claims.SessionID, lc,
		func(cr *listing.Criteria) (int64, error) {
			return ctl.CommentService.CountByState(state, cr)
		})
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	comments, err := ctl.CommentService.ListByState(state, &criteria, page)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"page":         pageResponse(comments, total, page),
		"criteria":     criteria,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

func (ctl *CommentController) ListUnlocked(c *gin.Context) {
	ctl.listByState(c, model.CommentNormal, listing.CtxUnlockedComments)
}

func (ctl *CommentController) ListLocked(c *gin.Context) {
	ctl.listByState(c, model.CommentLocked, listing.CtxLockedComments)
}

func (ctl *CommentController) Action(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	action := moderation.Action(c.PostForm("action"))

	message, err := ctl.CommentService.ApplyAction(
		claims.UserID, util.MustParseUint(c.Param("id")), action)
	switch {
	case err == nil:
	case err == util.ErrCommentNotFound:
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
	if action == moderation.CommentLock {
		util.SeeOther(c, "/api/admin/comments/locked")
	} else {
		util.SeeOther(c, "/api/admin/comments/unlocked")
	}
}
