package controller

import (
	"practice_hub_backend/internal/form"
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/moderation"
	"practice_hub_backend/internal/service"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/session"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	Sessions    *session.Manager
	Capsules    form.CapsuleStore
}

func NewUserController(userService *service.UserService, sessions *session.Manager, capsules form.CapsuleStore) *UserController {
	return &UserController{UserService: userService, Sessions: sessions, Capsules: capsules}
}

// ProfileView returns the signed-in user's profile with an edit form.
func (ctl *UserController) ProfileView(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	user, err := ctl.UserService.Profile(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	f := form.NewProfileForm()
	if p, ok := takeCapsule(c, ctl.Capsules); ok {
		f.Hydrate(p)
	} else {
		f.Name.Value = user.Name
		f.Email.Value = user.Email
	}

	util.Success(c, gin.H{
		"user":         user,
		"form":         f,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

// PublicProfile shows another user's public fields.
func (ctl *UserController) PublicProfile(c *gin.Context) {
	user, err := ctl.UserService.Profile(util.MustParseUint(c.Param("id")))
	if err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(c)
		} else {
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, gin.H{
		"name":      user.Name,
		"code":      user.Code,
		"state":     user.State,
		"questions": ctl.UserService.CreatedQuestionCount(user.ID),
	})
}

func (ctl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	user, err := ctl.UserService.Profile(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	f := form.NewProfileForm()
	f.Name.Value = c.PostForm("name")
	f.Email.Value = c.PostForm("email")

	if !f.Validate(func(email string) bool {
		return ctl.UserService.EmailTakenByOther(email, user.ID)
	}) {
		saveCapsule(c, ctl.Capsules, f.Redact(), profilePath)
		return
	}

	if err := ctl.UserService.UpdateProfile(user, f.Name.Value, f.Email.Value); err != nil {
		util.LogInternalError(c, err)
		return
	}

	ctl.Sessions.Flash(c.Request.Context(), claims.SessionID, "Your profile has been updated.")
	util.SeeOther(c, profilePath)
}

func (ctl *UserController) listByState(c *gin.Context, state model.UserState, lc listing.Context) {
	claims := util.GetUserFromContext(c)
	criteria, page, total, err := resolveListing(c, ctl.Sessions, claims.SessionID, lc,
		func(cr *listing.Criteria) (int64, error) {
			return ctl.UserService.CountByState(state, cr)
		})
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	users, err := ctl.UserService.ListByState(state, &criteria, page)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"page":         pageResponse(users, total, page),
		"criteria":     criteria,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

func (ctl *UserController) ListUnlocked(c *gin.Context) {
	ctl.listByState(c, model.UserNormal, listing.CtxUnlockedUsers)
}

func (ctl *UserController) ListLocked(c *gin.Context) {
	ctl.listByState(c, model.UserLocked, listing.CtxLockedUsers)
}

// Action locks or unlocks an account and redirects to the listing the
// account now belongs to.
func (ctl *UserController) Action(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	action := moderation.Action(c.PostForm("action"))

	message, err := ctl.UserService.ApplyAction(
		c.Request.Context(), claims.UserID, util.MustParseUint(c.Param("id")), action)
	switch {
	case err == nil:
	case err == util.ErrUserNotFound:
		util.NotFound(c)
		return
	case err == util.ErrPermissionDenied:
		util.Forbidden(c)
		return
	case moderation.IsIllegal(err):
		util.BadRequest(c, err.Error())
		return
	default:
		util.LogInternalError(c, err)
		return
	}

	ctl.Sessions.Flash(c.Request.Context(), claims.SessionID, message)
	if action == moderation.UserLock {
		util.SeeOther(c, "/api/admin/users/locked")
	} else {
		util.SeeOther(c, "/api/admin/users/unlocked")
	}
}
