package catalog

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/entitlement"
	"github.com/phamdangkhoamet/dkstory/internal/models"
)

// LockedMessage replaces the content of a gated chapter.
const LockedMessage = "Chương mới nhất chỉ dành cho thành viên VIP. Nâng cấp VIP để đọc ngay."

type ChapterListItem struct {
	No     int    `json:"no"`
	Title  string `json:"title"`
	Locked bool   `json:"locked"`
}

type ChapterContent struct {
	No      int     `json:"no"`
	Title   string  `json:"title"`
	Content *string `json:"content,omitempty"`
}

type ChapterView struct {
	Novel    *models.Novel  `json:"novel"`
	Chapter  ChapterContent `json:"chapter"`
	Locked   bool           `json:"locked"`
	Message  string         `json:"message,omitempty"`
	LatestNo int            `json:"latestNo"`
	PrevNo   *int           `json:"prevNo"`
	NextNo   *int           `json:"nextNo"`
}

// Reader serves chapters through the VIP gate.
type Reader struct {
	store ContentStore
	gate  *entitlement.Gate
}

func NewReader(store ContentStore, gate *entitlement.Gate) *Reader {
	return &Reader{store: store, gate: gate}
}

func (r *Reader) ListChapters(ctx context.Context, novelID string, viewer entitlement.Viewer) ([]ChapterListItem, error) {
	if _, err := r.store.GetNovel(ctx, novelID); err != nil {
		return nil, err
	}
	refs, err := r.store.ListChapterRefs(ctx, novelID)
	if err != nil {
		return nil, err
	}
	latest := latestNo(refs)
	return lo.Map(refs, func(ref ChapterRef, _ int) ChapterListItem {
		return ChapterListItem{
			No:     ref.No,
			Title:  ref.Title,
			Locked: r.gate.IsLocked(viewer, ref.No, latest),
		}
	}), nil
}

// ReadChapter returns chapter no of a novel. A locked chapter comes back
// without content and with LockedMessage.
func (r *Reader) ReadChapter(ctx context.Context, novelID string, no int, viewer entitlement.Viewer) (*ChapterView, error) {
	novel, err := r.store.GetNovel(ctx, novelID)
	if err != nil {
		return nil, err
	}
	refs, err := r.store.ListChapterRefs(ctx, novelID)
	if err != nil {
		return nil, err
	}
	idx := lo.IndexOf(lo.Map(refs, func(ref ChapterRef, _ int) int { return ref.No }), no)
	if idx < 0 {
		return nil, fmt.Errorf("chapter %d: %w", no, ErrNotFound)
	}

	view := &ChapterView{
		Novel:    novel,
		Chapter:  ChapterContent{No: no, Title: refs[idx].Title},
		LatestNo: latestNo(refs),
	}
	if idx > 0 {
		view.PrevNo = lo.ToPtr(refs[idx-1].No)
	}
	if idx < len(refs)-1 {
		view.NextNo = lo.ToPtr(refs[idx+1].No)
	}

	view.Locked = r.gate.IsLocked(viewer, no, view.LatestNo)
	if view.Locked {
		view.Message = LockedMessage
		return view, nil
	}

	ch, err := r.store.GetChapter(ctx, novelID, no)
	if err != nil {
		return nil, err
	}
	view.Chapter.Title = ch.Title
	view.Chapter.Content = lo.ToPtr(ch.Content)
	return view, nil
}

func latestNo(refs []ChapterRef) int {
	if len(refs) == 0 {
		return 0
	}
	return lo.MaxBy(refs, func(a, b ChapterRef) bool { return a.No > b.No }).No
}
