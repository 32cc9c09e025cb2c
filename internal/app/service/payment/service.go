package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/entitlement"
	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/logctx"
	"github.com/phamdangkhoamet/dkstory/pkg/metrics"
	"github.com/phamdangkhoamet/dkstory/pkg/tool"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUserNotFound    = errors.New("user not found")
	ErrMissingOperator = errors.New("grant requires a user and an operator")
	ErrInvalidPlan     = entitlement.ErrInvalidPlan
)

// StatusPaid is the only state a sandbox order ever reports.
const StatusPaid = "paid"

// LogWriter records entitlement changes. Implementations may write asynchronously.
type LogWriter interface {
	Save(ctx context.Context, entry *models.VipLog)
}

// Notifier delivers an in-app notification to a user.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification) error
}

// UserSnapshot is the part of the user returned to the payer.
type UserSnapshot struct {
	ID       string     `json:"id"`
	IsVip    bool       `json:"isVip"`
	VipUntil *time.Time `json:"vipUntil"`
}

type Result struct {
	OrderID string       `json:"orderId"`
	Status  string       `json:"status"`
	Plan    string       `json:"plan"`
	User    UserSnapshot `json:"user"`
}

// Service confirms sandbox purchases and admin grants. No payment gateway
// is contacted; every accepted request is paid immediately.
type Service struct {
	store    Store
	logs     LogWriter
	notifier Notifier
	log      *zap.SugaredLogger
	loc      *time.Location
	now      func() time.Time
}

func NewService(store Store, logs LogWriter, notifier Notifier, log *zap.SugaredLogger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, logs: logs, notifier: notifier, log: log, loc: loc, now: time.Now}
}

// Pay extends the caller's entitlement by planCode.
// Errors: ErrUnauthenticated, ErrInvalidPlan, ErrUserNotFound, or a wrapped
// store failure. Nothing is written unless all validation passes.
func (s *Service) Pay(ctx context.Context, userID, planCode string) (*Result, error) {
	if userID == "" {
		metrics.VipPurchaseFailures.WithLabelValues("unauthenticated").Inc()
		return nil, ErrUnauthenticated
	}
	return s.apply(ctx, userID, planCode, types.VipChangeReasonPurchase, "")
}

// Grant gives userID a plan for free on behalf of an operator.
func (s *Service) Grant(ctx context.Context, userID, planCode, operatorID string) (*Result, error) {
	if userID == "" || operatorID == "" {
		return nil, ErrMissingOperator
	}
	return s.apply(ctx, userID, planCode, types.VipChangeReasonGift, operatorID)
}

// Status reports the state of a sandbox order. Orders are not persisted, so
// any id, including a fabricated one, is paid.
func (s *Service) Status(_ string) string {
	return StatusPaid
}

func (s *Service) apply(ctx context.Context, userID, planCode string, reason types.VipChangeReason, operatorID string) (*Result, error) {
	plan, err := entitlement.ParsePlan(planCode)
	if err != nil {
		metrics.VipPurchaseFailures.WithLabelValues("invalid_plan").Inc()
		return nil, err
	}

	now := s.now().In(s.loc)
	var before models.VipEntitlementSnapshot
	user, err := s.store.UpdateEntitlement(ctx, userID, func(u *models.User) error {
		before = models.VipEntitlementSnapshot{IsVip: u.IsVip, VipUntil: u.VipUntil}
		until, err := entitlement.Extend(u.VipUntil, plan, now)
		if err != nil {
			return err
		}
		u.IsVip = true
		u.VipUntil = &until
		return nil
	})
	if errors.Is(err, ErrUserNotFound) {
		metrics.VipPurchaseFailures.WithLabelValues("user_not_found").Inc()
		return nil, err
	}
	if err != nil {
		metrics.VipPurchaseFailures.WithLabelValues("store").Inc()
		return nil, fmt.Errorf("failed to extend entitlement: %w", err)
	}

	orderID := ""
	if reason == types.VipChangeReasonPurchase {
		orderID = tool.GenerateSandboxOrderID(now)
	}
	metrics.VipPurchases.WithLabelValues(string(plan), string(reason)).Inc()
	logctx.FromCtx(ctx, s.log).Infow("vip entitlement extended",
		"user_id", user.ID, "plan", plan, "reason", reason, "order_id", orderID, "vip_until", user.VipUntil)

	if s.logs != nil {
		s.logs.Save(ctx, &models.VipLog{
			UserID:     user.ID,
			OrderID:    orderID,
			Plan:       string(plan),
			Reason:     reason,
			OperatorID: operatorID,
			Before:     datatypes.NewJSONType(before),
			After:      datatypes.NewJSONType(models.VipEntitlementSnapshot{IsVip: user.IsVip, VipUntil: user.VipUntil}),
			CreatedAt:  now,
		})
	}
	s.notify(ctx, user, plan, reason)

	return &Result{
		OrderID: orderID,
		Status:  StatusPaid,
		Plan:    string(plan),
		User:    UserSnapshot{ID: user.ID, IsVip: user.IsVip, VipUntil: user.VipUntil},
	}, nil
}

// notify failures are logged only; the entitlement is already committed.
func (s *Service) notify(ctx context.Context, user *models.User, plan entitlement.Plan, reason types.VipChangeReason) {
	if s.notifier == nil {
		return
	}
	title := "Thanh toán VIP thành công"
	if reason == types.VipChangeReasonGift {
		title = "Bạn được tặng VIP"
	}
	body := fmt.Sprintf("Gói %s đã được kích hoạt. VIP có hiệu lực đến %s.",
		plan, user.VipUntil.In(s.loc).Format("02/01/2006 15:04"))
	err := s.notifier.Notify(ctx, &models.Notification{
		UserID: user.ID,
		Title:  title,
		Body:   body,
		Link:   "/vip",
	})
	if err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("failed to write vip notification", "user_id", user.ID, "err", err)
	}
}
