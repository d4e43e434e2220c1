package controller

import (
	"practice_hub_backend/internal/form"
	"practice_hub_backend/internal/repository"
	"practice_hub_backend/internal/service"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/logger"
	"practice_hub_backend/pkg/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	signUpPath  = "/api/auth/sign-up"
	signInPath  = "/api/auth/sign-in"
	profilePath = "/api/practice/profile"
)

type AuthController struct {
	AuthService *service.AuthService
	Sessions    *session.Manager
	Capsules    form.CapsuleStore
}

func NewAuthController(authService *service.AuthService, sessions *session.Manager, capsules form.CapsuleStore) *AuthController {
	return &AuthController{AuthService: authService, Sessions: sessions, Capsules: capsules}
}

// takeCapsule pops the one-time form state named by ?fs=, if any. A
// store error degrades to a blank form rather than failing the view.
func takeCapsule(c *gin.Context, capsules form.CapsuleStore) (form.Payload, bool) {
	p, ok, err := capsules.Take(c.Request.Context(), c.Query("fs"))
	if err != nil {
		logger.Log.Error("Failed to take form capsule", zap.Error(err))
		return form.Payload{}, false
	}
	return p, ok
}

// saveCapsule stores failed form state and redirects back to the form.
func saveCapsule(c *gin.Context, capsules form.CapsuleStore, p form.Payload, backTo string) {
	token, err := capsules.Save(c.Request.Context(), p)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.SeeOtherWithCapsule(c, backTo, token)
}

func (ctl *AuthController) SignUpView(c *gin.Context) {
	f := form.NewSignUpForm()
	if p, ok := takeCapsule(c, ctl.Capsules); ok {
		f.Hydrate(p)
	}
	util.Success(c, gin.H{"form": f})
}

func (ctl *AuthController) SignUp(c *gin.Context) {
	f := form.NewSignUpForm()
	f.Name.Value = c.PostForm("name")
	f.Email.Value = c.PostForm("email")
	password := c.PostForm("password")
	repeated := c.PostForm("repeated_password")

	if !f.Validate(password, repeated, ctl.AuthService.EmailTaken) {
		saveCapsule(c, ctl.Capsules, f.Redact(), signUpPath)
		return
	}

	if _, err := ctl.AuthService.Register(f.Name.Value, f.Email.Value, password); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.SeeOther(c, signInPath)
}

func (ctl *AuthController) SignInView(c *gin.Context) {
	f := form.NewSignInForm()
	if p, ok := takeCapsule(c, ctl.Capsules); ok {
		f.Hydrate(p)
	}
	util.Success(c, gin.H{"form": f})
}

// SignIn is the one POST that answers with a body instead of a
// redirect: the client has to capture the bearer token.
func (ctl *AuthController) SignIn(c *gin.Context) {
	f := form.NewSignInForm()
	f.Email.Value = c.PostForm("email")
	password := c.PostForm("password")

	if !f.Validate(password) {
		saveCapsule(c, ctl.Capsules, f.Redact(), signInPath)
		return
	}

	token, user, err := ctl.AuthService.Login(c.Request.Context(), f.Email.Value, password)
	switch err {
	case nil:
	case util.ErrBadCredentials:
		f.FailCredentials()
		saveCapsule(c, ctl.Capsules, f.Redact(), signInPath)
		return
	case util.ErrAccountLocked:
		f.FailLocked()
		saveCapsule(c, ctl.Capsules, f.Redact(), signInPath)
		return
	default:
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"token": token, "user": user})
}

func (ctl *AuthController) SignOut(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	if err := ctl.AuthService.Logout(c.Request.Context(), claims.SessionID); err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.SeeOther(c, signInPath)
}

func (ctl *AuthController) PasswordView(c *gin.Context) {
	f := form.NewPasswordForm()
	if p, ok := takeCapsule(c, ctl.Capsules); ok {
		f.Hydrate(p)
	}
	claims := util.GetUserFromContext(c)
	util.Success(c, gin.H{
		"form":         f,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

func (ctl *AuthController) ChangePassword(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	user, err := ctl.AuthService.UserRepo.FindByID(claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			util.Unauthorized(c)
		} else {
			util.LogInternalError(c, err)
		}
		return
	}

	f := form.NewPasswordForm()
	old := c.PostForm("old_password")
	next := c.PostForm("new_password")
	repeated := c.PostForm("repeated_new_password")

	if !f.Validate(old, next, repeated, func(p string) bool {
		return ctl.AuthService.PasswordMatches(user, p)
	}) {
		saveCapsule(c, ctl.Capsules, f.Redact(), "/api/auth/password")
		return
	}

	if err := ctl.AuthService.ChangePassword(c.Request.Context(), user, next); err != nil {
		util.LogInternalError(c, err)
		return
	}

	// The session died with the old password; sign in again.
	util.SeeOther(c, signInPath)
}
