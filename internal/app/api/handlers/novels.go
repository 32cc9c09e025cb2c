package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/phamdangkhoamet/dkstory/internal/app/api/middleware"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/catalog"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/entitlement"
	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/logctx"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

// UserLookup loads the account behind an identity.
type UserLookup interface {
	User(ctx context.Context, userID string) (*models.User, error)
}

// viewerFor returns the caller's entitlement. Anonymous callers and unknown
// users read as non-VIP.
func viewerFor(c *gin.Context, users UserLookup, log *zap.SugaredLogger) entitlement.Viewer {
	uid := mw.UserIDFrom(c)
	if uid == "" || users == nil {
		return entitlement.Viewer{}
	}
	u, err := users.User(c.Request.Context(), uid)
	if err != nil {
		logctx.FromGin(c, log).Debugw("viewer lookup failed, reading as guest", "err", err)
		return entitlement.Viewer{}
	}
	return entitlement.Viewer{IsVip: u.IsVip, VipUntil: u.VipUntil}
}

// callerFor builds the catalog caller from the identity and account record.
func callerFor(c *gin.Context, users UserLookup) (catalog.Caller, error) {
	id, _ := mw.IdentityFrom(c)
	caller := catalog.Caller{ID: id.UserID, Role: id.Role}
	u, err := users.User(c.Request.Context(), id.UserID)
	if err != nil {
		return caller, err
	}
	caller.Name = u.Name
	caller.Role = u.Role
	return caller, nil
}

// @Summary      List novels
// @Description  Newest first. q matches title, author and description.
// @Tags         Novels
// @Produce      json
// @Param        genre query string false "Genre"
// @Param        q     query string false "Search term"
// @Param        limit query int    false "Max items"
// @Success      200  {object}  handlers.RespNovels
// @Router       /api/novels [get]
func ApiListNovels(svc *catalog.NovelService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), catalog.ListNovelsRequest{
			Genre: c.Query("genre"),
			Query: c.Query("q"),
			Limit: queryInt(c, "limit", 0),
		})
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, items)
	}
}

// @Summary      List genres
// @Description  Distinct genres of published novels, alphabetically.
// @Tags         Novels
// @Produce      json
// @Success      200  {object}  handlers.RespGenres
// @Router       /api/genres [get]
func ApiListGenres(svc *catalog.NovelService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		genres, err := svc.Genres(c.Request.Context())
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, genres)
	}
}

// @Summary      Get novel
// @Tags         Novels
// @Produce      json
// @Param        id path string true "Novel id"
// @Success      200  {object}  handlers.RespNovel
// @Failure      404  {object}  handlers.RespOK
// @Router       /api/novels/{id} [get]
func ApiGetNovel(svc *catalog.NovelService, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, n)
	}
}

// @Summary      Create novel
// @Tags         Novels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.NovelInput true "Novel"
// @Success      200  {object}  handlers.RespNovel
// @Failure      400  {object}  handlers.RespOK
// @Router       /api/novels [post]
func ApiCreateNovel(svc *catalog.NovelService, users UserLookup, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.NovelInput
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		caller, err := callerFor(c, users)
		if err != nil {
			fail(c, log, err)
			return
		}
		n, err := svc.Create(c.Request.Context(), caller, req)
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, n)
	}
}

// @Summary      Update novel
// @Description  Partial update; only the author or an admin may edit.
// @Tags         Novels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string             true "Novel id"
// @Param        request body catalog.NovelPatch true "Fields to change"
// @Success      200  {object}  handlers.RespNovel
// @Failure      403  {object}  handlers.RespOK
// @Router       /api/novels/{id} [put]
func ApiUpdateNovel(svc *catalog.NovelService, users UserLookup, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.NovelPatch
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		caller, err := callerFor(c, users)
		if err != nil {
			fail(c, log, err)
			return
		}
		n, err := svc.Update(c.Request.Context(), caller, c.Param("id"), req)
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, n)
	}
}

// @Summary      Add chapter
// @Description  Appends a chapter numbered after the current latest one.
// @Tags         Novels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string               true "Novel id"
// @Param        request body catalog.ChapterInput true "Chapter"
// @Success      200  {object}  handlers.RespOK
// @Failure      403  {object}  handlers.RespOK
// @Router       /api/novels/{id}/chapters [post]
func ApiAddChapter(svc *catalog.NovelService, users UserLookup, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.ChapterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c, err)
			return
		}
		caller, err := callerFor(c, users)
		if err != nil {
			fail(c, log, err)
			return
		}
		ch, err := svc.AddChapter(c.Request.Context(), caller, c.Param("id"), req)
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, ch)
	}
}

// @Summary      List chapters
// @Description  Chapter index with the lock flag for the caller.
// @Tags         Reader
// @Produce      json
// @Param        id path string true "Novel id"
// @Success      200  {object}  handlers.RespChapterList
// @Router       /api/novels/{id}/chapters [get]
func ApiListChapters(reader *catalog.Reader, users UserLookup, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := reader.ListChapters(c.Request.Context(), c.Param("id"), viewerFor(c, users, log))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, items)
	}
}

// @Summary      Read chapter
// @Description  The latest chapter is locked for non-VIP readers; its content is then omitted.
// @Tags         Reader
// @Produce      json
// @Param        id path string true "Novel id"
// @Param        no path int    true "Chapter number"
// @Success      200  {object}  handlers.RespChapterView
// @Failure      404  {object}  handlers.RespOK
// @Router       /api/novels/{id}/chapters/{no} [get]
func ApiReadChapter(reader *catalog.Reader, users UserLookup, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		no, err := strconv.Atoi(c.Param("no"))
		if err != nil || no < 1 {
			badRequest(c, "invalid chapter number")
			return
		}
		view, err := reader.ReadChapter(c.Request.Context(), c.Param("id"), no, viewerFor(c, users, log))
		if err != nil {
			fail(c, log, err)
			return
		}
		response.OK(c, view)
	}
}

func RegisterNovelRoutes(r gin.IRouter, svc *catalog.NovelService, reader *catalog.Reader, users UserLookup, log *zap.SugaredLogger) {
	r.GET("", ApiListNovels(svc, log))
	r.GET("/:id", ApiGetNovel(svc, log))
	r.GET("/:id/chapters", ApiListChapters(reader, users, log))
	r.GET("/:id/chapters/:no", ApiReadChapter(reader, users, log))
	r.POST("", mw.RequireUser(), ApiCreateNovel(svc, users, log))
	r.PUT("/:id", mw.RequireUser(), ApiUpdateNovel(svc, users, log))
	r.POST("/:id/chapters", mw.RequireUser(), ApiAddChapter(svc, users, log))
}

func RegisterGenreRoutes(r gin.IRouter, svc *catalog.NovelService, log *zap.SugaredLogger) {
	r.GET("", ApiListGenres(svc, log))
}
