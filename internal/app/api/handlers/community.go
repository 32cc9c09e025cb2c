package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	mw "github.com/phamdangkhoamet/dkstory/internal/app/api/middleware"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/community"
	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

type FollowersResponse struct {
	Followers int64 `json:"followers"`
}

// @Summary      List authors
// @Tags         Authors
// @Produce      json
// @Param        q        query string false "Name or bio contains"
// @Param        country  query string false "Country"
// @Param        genres   query string false "Comma separated genres, any match"
// @Param        sort     query string false "name-asc | name-desc | rating-desc | books-desc"
// @Param        page     query int    false "Page, from 1"
// @Param        pageSize query int    false "Page size"
// @Success      200  {object}  handlers.RespAuthorPage
// @Router       /api/authors [get]
func ApiListAuthors(svc *community.AuthorService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var genres []string
		if raw := c.Query("genres"); raw != "" {
			genres = strings.Split(raw, ",")
		}
		page, err := svc.List(c.Request.Context(), community.ListAuthorsRequest{
			Query:    c.Query("q"),
			Country:  c.Query("country"),
			Genres:   genres,
			Sort:     community.AuthorSort(c.Query("sort")),
			Page:     queryInt(c, "page", 1),
			PageSize: queryInt(c, "pageSize", 0),
		})
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, page)
	}
}

// @Summary      Get author
// @Tags         Authors
// @Produce      json
// @Param        id path string true "Author id"
// @Success      200  {object}  handlers.RespAuthor
// @Failure      404  {object}  handlers.RespOK
// @Router       /api/authors/{id} [get]
func ApiGetAuthor(svc *community.AuthorService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, a)
	}
}

// @Summary      Follow author
// @Tags         Authors
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Author id"
// @Success      200  {object}  handlers.RespFollowers
// @Router       /api/authors/{id}/follow [post]
func ApiFollowAuthor(svc *community.FollowService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.Follow(c.Request.Context(), mw.UserIDFrom(c), c.Param("id"))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, FollowersResponse{Followers: n})
	}
}

// @Summary      Unfollow author
// @Tags         Authors
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Author id"
// @Success      200  {object}  handlers.RespFollowers
// @Router       /api/authors/{id}/follow [delete]
func ApiUnfollowAuthor(svc *community.FollowService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.Unfollow(c.Request.Context(), mw.UserIDFrom(c), c.Param("id"))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, FollowersResponse{Followers: n})
	}
}

// @Summary      Followed authors
// @Tags         Authors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespAuthors
// @Router       /api/follows [get]
func ApiListFollows(svc *community.FollowService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListFollowed(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, items)
	}
}

func RegisterAuthorRoutes(r gin.IRouter, authors *community.AuthorService, follows *community.FollowService, log *zap.SugaredLogger) {
	r.GET("", ApiListAuthors(authors, log))
	r.GET("/:id", ApiGetAuthor(authors, log))
	r.POST("/:id/follow", mw.RequireUser(), ApiFollowAuthor(follows, log))
	r.DELETE("/:id/follow", mw.RequireUser(), ApiUnfollowAuthor(follows, log))
}

func RegisterFollowRoutes(r gin.IRouter, follows *community.FollowService, log *zap.SugaredLogger) {
	r.GET("", ApiListFollows(follows, log))
}

// @Summary      Favorite novels
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespNovels
// @Router       /api/favorites [get]
func ApiListFavorites(svc *community.FavoriteService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, items)
	}
}

// @Summary      Add favorite
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Param        novelId path string true "Novel id"
// @Success      200  {object}  handlers.RespOK
// @Failure      404  {object}  handlers.RespOK
// @Router       /api/favorites/{novelId} [post]
func ApiAddFavorite(svc *community.FavoriteService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Add(c.Request.Context(), mw.UserIDFrom(c), c.Param("novelId")); err != nil {
			fail(c, log, err)
			return
		}
		response.OK[any](c, nil)
	}
}

// @Summary      Remove favorite
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Param        novelId path string true "Novel id"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/favorites/{novelId} [delete]
func ApiRemoveFavorite(svc *community.FavoriteService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), mw.UserIDFrom(c), c.Param("novelId")); err != nil {
			fail(c, log, err)
			return
		}
		response.OK[any](c, nil)
	}
}

func RegisterFavoriteRoutes(r gin.IRouter, svc *community.FavoriteService, log *zap.SugaredLogger) {
	r.GET("", ApiListFavorites(svc, log))
	r.POST("/:novelId", ApiAddFavorite(svc, log))
	r.DELETE("/:novelId", ApiRemoveFavorite(svc, log))
}

type NotificationsResponse struct {
	Items  []*NotificationItem `json:"items"`
	Unread int                 `json:"unread"`
}

type NotificationItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Link      string `json:"link"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

// @Summary      Notifications
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespNotifications
// @Router       /api/notifications [get]
func ApiListNotifications(svc *community.NotificationService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			fail(c, log, err)
			return
		}
		out := lo.Map(items, func(n *models.Notification, _ int) *NotificationItem {
			return &NotificationItem{
				ID:        n.ID,
				Title:     n.Title,
				Body:      n.Body,
				Link:      n.Link,
				Read:      n.Read,
				CreatedAt: n.CreatedAt.Format(time.RFC3339),
			}
		})
		unread := lo.CountBy(items, func(n *models.Notification) bool { return !n.Read })
		response.OK(c, NotificationsResponse{Items: out, Unread: unread})
	}
}

// @Summary      Mark notification read
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification id"
// @Success      200  {object}  handlers.RespOK
// @Failure      404  {object}  handlers.RespOK
// @Router       /api/notifications/{id}/read [patch]
func ApiMarkNotificationRead(svc *community.NotificationService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkRead(c.Request.Context(), mw.UserIDFrom(c), c.Param("id")); err != nil {
			fail(c, log, err)
			return
		}
		response.OK[any](c, nil)
	}
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// @Summary      Mark all notifications read
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespMarkAllRead
// @Router       /api/notifications/mark-all-read [post]
func ApiMarkAllNotificationsRead(svc *community.NotificationService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.MarkAllRead(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, MarkAllReadResponse{Updated: n})
	}
}

func RegisterNotificationRoutes(r gin.IRouter, svc *community.NotificationService, log *zap.SugaredLogger) {
	r.GET("", ApiListNotifications(svc, log))
	r.POST("/mark-all-read", ApiMarkAllNotificationsRead(svc, log))
	r.PATCH("/:id/read", ApiMarkNotificationRead(svc, log))
}
