package app

import (
	"practice_hub_backend/internal/middleware"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	// Anonymous surface: registration and login.
	auth := router.Group("/api/auth")
	{
		auth.GET("/sign-up", c.auth.SignUpView)
		auth.POST("/sign-up", c.auth.SignUp)
		auth.GET("/sign-in", c.auth.SignInView)
		auth.POST("/sign-in", c.auth.SignIn)
	}

	// Signed-in surface.
	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(a.Sessions))
	{
		authorized.POST("/auth/sign-out", c.auth.SignOut)
		authorized.GET("/auth/password", c.auth.PasswordView)
		authorized.POST("/auth/password", c.auth.ChangePassword)

		practice := authorized.Group("/practice")
		{
			practice.GET("/profile", c.user.ProfileView)
			practice.POST("/profile", c.user.UpdateProfile)
			practice.GET("/profile/:id", c.user.PublicProfile)

			practice.GET("/questions/new", c.question.NewView)
			practice.POST("/questions", c.question.Create)
			practice.GET("/questions/created", c.question.ListCreated)
			practice.GET("/questions/answered", c.question.ListAnswered)
			practice.GET("/questions/unanswered", c.question.ListUnanswered)
			practice.GET("/questions/:id", c.question.Detail)
			practice.POST("/questions/:id/answers", c.question.SubmitAnswer)
			practice.POST("/questions/:id/comments", c.question.SubmitComment)

			practice.GET("/evaluations/new", c.evaluation.NewView)
			practice.POST("/evaluations", c.evaluation.Create)
		}
	}

	// Moderation surface, admins only.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(a.Sessions), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/questions/pending", c.question.ListPending)
		admin.GET("/questions/approved", c.question.ListApproved)
		admin.GET("/questions/unapproved", c.question.ListUnapproved)
		admin.GET("/questions/locked", c.question.ListLocked)
		admin.POST("/questions/:id/action", c.question.Action)

		admin.GET("/comments/unlocked", c.comment.ListUnlocked)
		admin.GET("/comments/locked", c.comment.ListLocked)
		admin.POST("/comments/:id/action", c.comment.Action)

		admin.GET("/evaluations/questions/pending", c.evaluation.ListPendingForQuestions)
		admin.GET("/evaluations/questions/locked", c.evaluation.ListLockedForQuestions)
		admin.GET("/evaluations/comments/pending", c.evaluation.ListPendingForComments)
		admin.GET("/evaluations/comments/locked", c.evaluation.ListLockedForComments)
		admin.POST("/evaluations/:id/action", c.evaluation.Action)

		admin.GET("/users/unlocked", c.user.ListUnlocked)
		admin.GET("/users/locked", c.user.ListLocked)
		admin.POST("/users/:id/action", c.user.Action)

		admin.GET("/tags", c.tag.List)
		admin.POST("/tags", c.tag.Create)
	}
}
