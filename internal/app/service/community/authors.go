package community

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
)

var ErrNotFound = errors.New("not found")

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

type AuthorSort string

const (
	AuthorSortNameAsc    AuthorSort = "name-asc"
	AuthorSortNameDesc   AuthorSort = "name-desc"
	AuthorSortRatingDesc AuthorSort = "rating-desc"
	AuthorSortBooksDesc  AuthorSort = "books-desc"
)

var authorOrder = map[AuthorSort]clause.OrderByColumn{
	AuthorSortNameAsc:    {Column: clause.Column{Name: "name"}},
	AuthorSortNameDesc:   {Column: clause.Column{Name: "name"}, Desc: true},
	AuthorSortRatingDesc: {Column: clause.Column{Name: "rating"}, Desc: true},
	AuthorSortBooksDesc:  {Column: clause.Column{Name: "books_count"}, Desc: true},
}

type ListAuthorsRequest struct {
	Query    string
	Country  string
	Genres   []string
	Sort     AuthorSort
	Page     int
	PageSize int
}

// normalize clamps paging and drops blank genres.
func (r *ListAuthorsRequest) normalize() {
	r.Query = strings.TrimSpace(r.Query)
	r.Country = strings.TrimSpace(r.Country)
	r.Genres = lo.Uniq(lo.Filter(lo.Map(r.Genres, func(g string, _ int) string {
		return strings.TrimSpace(g)
	}), func(g string, _ int) bool { return g != "" }))
	if _, ok := authorOrder[r.Sort]; !ok {
		r.Sort = AuthorSortNameAsc
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = defaultPageSize
	}
	if r.PageSize > maxPageSize {
		r.PageSize = maxPageSize
	}
}

type AuthorPage struct {
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Total    int64            `json:"total"`
	Items    []*models.Author `json:"items"`
}

type AuthorService struct {
	db *gorm.DB
}

func NewAuthorService(db *gorm.DB) *AuthorService { return &AuthorService{db: db} }

func (s *AuthorService) List(ctx context.Context, req ListAuthorsRequest) (*AuthorPage, error) {
	req.normalize()

	q := s.db.WithContext(ctx).Model(&models.Author{})
	if req.Query != "" {
		like := "%" + req.Query + "%"
		q = q.Where("name ILIKE ? OR bio ILIKE ?", like, like)
	}
	if req.Country != "" {
		q = q.Where("country = ?", req.Country)
	}
	// an author matches when any requested genre is present
	if len(req.Genres) > 0 {
		q = q.Where(clause.Or(lo.Map(req.Genres, func(g string, _ int) clause.Expression {
			return datatypes.JSONArrayQuery("genres").Contains(g)
		})...))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count authors: %w", err)
	}

	items := make([]*models.Author, 0)
	err := q.Order(authorOrder[req.Sort]).
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return &AuthorPage{Page: req.Page, PageSize: req.PageSize, Total: total, Items: items}, nil
}

func (s *AuthorService) Get(ctx context.Context, id string) (*models.Author, error) {
	if !tool.IsUUID(id) {
		return nil, ErrNotFound
	}
	var a models.Author
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return &a, nil
}
