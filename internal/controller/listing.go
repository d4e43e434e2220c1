package controller

import (
	"practice_hub_backend/internal/listing"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/logger"
	"practice_hub_backend/pkg/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// criteriaFromQuery builds a fresh criteria block from the request.
// Only reached when the filter form was submitted (filter=input); it
// then replaces whatever the session held for this context.
func criteriaFromQuery(c *gin.Context) listing.Criteria {
	return listing.Criteria{
		CreatedFrom:       c.Query("createdFrom"),
		CreatedTo:         c.Query("createdTo"),
		Content:           c.Query("content"),
		Hashtag:           c.Query("hashtag"),
		AuthorName:        c.Query("authorName"),
		AuthorCode:        c.Query("authorCode"),
		Name:              c.Query("name"),
		SortCreatedAsc:    c.Query("sortCreatedAsc") != "",
		MoreAnswersFirst:  c.Query("moreAnswersFirst") != "",
		MoreCommentsFirst: c.Query("moreCommentsFirst") != "",
	}
}

func validLimit(limit int) bool {
	for _, l := range listing.Limits {
		if limit == l {
			return true
		}
	}
	return false
}

// resolveListing runs the shared listing protocol for one context:
// load or overwrite the session criteria block, settle the page size,
// count the matching rows and clamp the requested page.
func resolveListing(c *gin.Context, sessions *session.Manager, sessionID string, lc listing.Context, count func(*listing.Criteria) (int64, error)) (listing.Criteria, listing.Page, int64, error) {
	ctx := c.Request.Context()

	var criteria listing.Criteria
	if c.Query("filter") == "input" {
		criteria = criteriaFromQuery(c)
		if err := sessions.SaveCriteria(ctx, sessionID, lc, criteria); err != nil {
			logger.Log.Error("Failed to save listing criteria", zap.Error(err))
		}
	} else if stored, ok, err := sessions.Criteria(ctx, sessionID, lc); err != nil {
		return criteria, listing.Page{}, 0, err
	} else if ok {
		criteria = stored
	}

	requested := listing.ParseInt(c.Query("limit"), 0)
	if !validLimit(requested) {
		requested = 0
	}
	limit := listing.ResolveLimit(requested, sessions.Limit(ctx, sessionID, lc))
	if requested > 0 {
		if err := sessions.SaveLimit(ctx, sessionID, lc, requested); err != nil {
			logger.Log.Error("Failed to save listing limit", zap.Error(err))
		}
	}

	total, err := count(&criteria)
	if err != nil {
		return criteria, listing.Page{}, 0, err
	}

	page := listing.Resolve(total, limit, listing.ParseInt(c.Query("offset"), 1))
	return criteria, page, total, nil
}

func pageResponse(list interface{}, total int64, page listing.Page) util.PageResponse {
	return util.PageResponse{
		List:      list,
		Total:     total,
		Page:      page.Offset,
		PageCount: page.Count,
		Limit:     page.Limit,
	}
}
