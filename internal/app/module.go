package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/phamdangkhoamet/dkstory/internal/app/api/server"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/account"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/catalog"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/community"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/entitlement"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/moderation"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/payment"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/ratelimit"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/statistics"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/viplog"
	"github.com/phamdangkhoamet/dkstory/internal/platform/cache"
	"github.com/phamdangkhoamet/dkstory/internal/platform/db"
	"github.com/phamdangkhoamet/dkstory/internal/platform/token"
	"github.com/phamdangkhoamet/dkstory/pkg/config"
	"github.com/phamdangkhoamet/dkstory/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	cache.Module,
	token.Module,
	server.Module,
	entitlement.Module,
	ratelimit.Module,
	viplog.Module,
	community.Module,
	catalog.Module,
	account.Module,
	moderation.Module,
	statistics.Module,
	payment.Module,
)
