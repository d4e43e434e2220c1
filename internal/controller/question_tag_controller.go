package controller

import (
	"practice_hub_backend/internal/form"
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/service"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/session"

	"github.com/gin-gonic/gin"
)

const tagsPath = "/api/admin/tags"

type QuestionTagController struct {
	TagService *service.QuestionTagService
	Sessions   *session.Manager
	Capsules   form.CapsuleStore
}

func NewQuestionTagController(tagService *service.QuestionTagService, sessions *session.Manager, capsules form.CapsuleStore) *QuestionTagController {
	return &QuestionTagController{TagService: tagService, Sessions: sessions, Capsules: capsules}
}

// List serves the tag listing together with the creation form.
func (ctl *QuestionTagController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	criteria, page, total, err := resolveListing(c, ctl.Sessions, claims.SessionID,
		listing.CtxQuestionTags, ctl.TagService.Count)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	tags, err := ctl.TagService.List(&criteria, page)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	f := form.NewTagForm()
	if p, ok := takeCapsule(c, ctl.Capsules); ok {
		f.Hydrate(p)
	}

	util.Success(c, gin.H{
		"page":         pageResponse(tags, total, page),
		"criteria":     criteria,
		"form":         f,
		"notification": ctl.Sessions.PopFlash(c.Request.Context(), claims.SessionID),
	})
}

func (ctl *QuestionTagController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	f := form.NewTagForm()
	f.Name.Value = c.PostForm("name")

	if !f.Validate(ctl.TagService.NameTaken) {
		saveCapsule(c, ctl.Capsules, f.Redact(), tagsPath)
		return
	}

	tag, err := ctl.TagService.Create(f.Name.Value)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	ctl.Sessions.Flash(c.Request.Context(), claims.SessionID,
		"The tag "+tag.Name+" has been created.")
	util.SeeOther(c, tagsPath)
}
