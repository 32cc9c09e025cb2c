package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("report not found")
)

const (
	minDescriptionLen = 10
	maxAttachments    = 10
	defaultScanSize   = 20
	maxScanSize       = 200
)

// filterableColumns are the report columns admins may filter and sort on.
var filterableColumns = []string{"type", "status", "novel_id", "chapter_no", "user_id", "created_at", "updated_at"}

type CreateReportInput struct {
	Type        types.ReportType          `json:"type" binding:"required,oneof=chapter novel other"`
	NovelID     string                    `json:"novelId"`
	ChapterNo   *int                      `json:"chapterNo" binding:"omitempty,min=1"`
	Reason      string                    `json:"reason"`
	Description string                    `json:"description" binding:"required"`
	Attachments []models.ReportAttachment `json:"attachments"`
}

type ScanReportsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanReportsResponse struct {
	Items []*models.Report `json:"items"`
	Total int64            `json:"total"`
}

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// Create files a report. reporterID may be empty for anonymous reports.
func (s *Service) Create(ctx context.Context, reporterID string, in CreateReportInput) (*models.Report, error) {
	report, err := buildReport(reporterID, in)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

func buildReport(reporterID string, in CreateReportInput) (*models.Report, error) {
	novelID := strings.TrimSpace(in.NovelID)
	if in.Type == types.ReportTypeChapter && (novelID == "" || in.ChapterNo == nil) {
		return nil, fmt.Errorf("%w: chapter reports need novelId and chapterNo", ErrInvalidInput)
	}
	desc := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(desc) < minDescriptionLen {
		return nil, fmt.Errorf("%w: description must have at least %d characters", ErrInvalidInput, minDescriptionLen)
	}

	attachments := lo.Filter(in.Attachments, func(a models.ReportAttachment, _ int) bool {
		return strings.TrimSpace(a.URL) != ""
	})
	if len(attachments) > maxAttachments {
		attachments = attachments[:maxAttachments]
	}

	report := &models.Report{
		ID:          tool.GenerateUUIDV7(),
		Type:        in.Type,
		Reason:      strings.TrimSpace(in.Reason),
		Description: desc,
		Attachments: attachments,
		Status:      types.ReportStatusPending,
	}
	if novelID != "" {
		report.NovelID = &novelID
	}
	if in.Type != types.ReportTypeOther {
		report.ChapterNo = in.ChapterNo
	}
	if tool.IsUUID(reporterID) {
		report.UserID = &reporterID
	}
	return report, nil
}

// Scan lists reports for moderators with whitelisted filters and sorting.
func (s *Service) Scan(ctx context.Context, req *ScanReportsRequest) (*ScanReportsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ErrInvalidInput)
	}
	for _, f := range req.Filters {
		if err := f.Validate(filterableColumns); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if req.SortBy == "" {
		req.SortBy = "created_at"
	}
	if !lo.Contains(filterableColumns, req.SortBy) {
		return nil, fmt.Errorf("%w: cannot sort by %q", ErrInvalidInput, req.SortBy)
	}
	if req.Size <= 0 {
		req.Size = defaultScanSize
	}
	if req.Size > maxScanSize {
		req.Size = maxScanSize
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Report{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{types.FiltersAnd(req.Filters)}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	rows := make([]*models.Report, 0)
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return &ScanReportsResponse{Items: rows, Total: total}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status types.ReportStatus) (*models.Report, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if !tool.IsUUID(id) {
		return nil, ErrNotFound
	}
	res := s.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update report: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var report models.Report
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to reload report: %w", err)
	}
	return &report, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
