// Topic HTTP handlers.
//
// Topics are a read-only lookup resource. Each topic is exposed with its
// slug, description, and a derived display name.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncnews/go-news-api/internal/http/httperr"
	"github.com/ncnews/go-news-api/internal/services"
)

// TopicView is the public shape of a topic.
type TopicView struct {
	Slug        string `json:"slug" example:"premier-league"`
	Description string `json:"description" example:"The top flight of English football"`
	DisplayName string `json:"display_name" example:"Premier League"`
}

// TopicsResponse wraps the list of topics.
type TopicsResponse struct {
	Topics []TopicView `json:"topics"`
}

// ListTopics godoc
// @ID          listTopics
// @Summary     List topics
// @Tags        Topics
// @Produce     json
//
// @Success     200  {object}  handlers.TopicsResponse
// @Failure     500  {object}  httperr.Response  "Internal error"
// @Router      /topics [get]
func (h *Handlers) ListTopics(c *gin.Context) {
	topics, err := h.topicSvc.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	views := make([]TopicView, 0, len(topics))
	for _, tp := range topics {
		views = append(views, TopicView{
			Slug:        tp.Slug,
			Description: tp.Description,
			DisplayName: services.TopicDisplayName(tp.Slug),
		})
	}
	ok(c, http.StatusOK, TopicsResponse{Topics: views})
}
