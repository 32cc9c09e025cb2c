package viplog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/internal/platform/dbtest"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

func TestSave_WritesAsynchronously(t *testing.T) {
	db, mock := dbtest.New(t)
	svc := New(db, zap.NewNop().Sugar())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "vip_log"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	until := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	entry := &models.VipLog{
		UserID:  "0197a0a0-0000-7000-8000-000000000001",
		OrderID: "SBOX-1-abcdef12",
		Plan:    "vip1d",
		Reason:  types.VipChangeReasonPurchase,
		After:   datatypes.NewJSONType(models.VipEntitlementSnapshot{IsVip: true, VipUntil: &until}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	svc.Save(ctx, entry)
	cancel()
	svc.Wait()

	require.NotEmpty(t, entry.ID)
}

func TestSave_NilIsIgnored(t *testing.T) {
	db, _ := dbtest.New(t)
	svc := New(db, zap.NewNop().Sugar())
	svc.Save(context.Background(), nil)
	svc.Wait()
}

const testUserID = "0191f3a2-7c1e-7b4a-9a52-3c1d2e4f5a6b"

func TestListByUser(t *testing.T) {
	db, mock := dbtest.New(t)
	svc := New(db, zap.NewNop().Sugar())

	rows := sqlmock.NewRows([]string{"id", "user_id", "order_id", "plan", "reason"}).
		AddRow("log-2", testUserID, "SBOX-2-aaaaaaaa", "vip1m", "purchase").
		AddRow("log-1", testUserID, "", "vip1d", "gift")
	mock.ExpectQuery(`SELECT \* FROM "vip_log" WHERE user_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs(testUserID, defaultHistoryLimit).
		WillReturnRows(rows)

	items, err := svc.ListByUser(context.Background(), testUserID, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "log-2", items[0].ID)
	require.Equal(t, types.VipChangeReasonGift, items[1].Reason)

	// malformed ids never reach the database
	items, err = svc.ListByUser(context.Background(), "abc", 0)
	require.NoError(t, err)
	require.Empty(t, items)
}
