package payment

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/community"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/viplog"
	"github.com/phamdangkhoamet/dkstory/pkg/config"
)

type params struct {
	fx.In

	Store    Store
	Logs     *viplog.Service
	Notifier Notifier
	Log      *zap.SugaredLogger
	Cfg      *config.Config
}

func newService(p params) *Service {
	return NewService(p.Store, p.Logs, p.Notifier, p.Log, p.Cfg.Location())
}

// Module exposes the sandbox payment confirmer via Fx.
var Module = fx.Options(
	fx.Provide(
		NewStore,
		newService,
		func(n *community.NotificationService) Notifier { return n },
	),
)
