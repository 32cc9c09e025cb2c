package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/phamdangkhoamet/dkstory/docs"
	"github.com/phamdangkhoamet/dkstory/internal/app/api/handlers"
	mw "github.com/phamdangkhoamet/dkstory/internal/app/api/middleware"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/account"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/catalog"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/community"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/moderation"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/payment"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/ratelimit"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/statistics"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/viplog"
	cfgpkg "github.com/phamdangkhoamet/dkstory/pkg/config"
	metrics "github.com/phamdangkhoamet/dkstory/pkg/metrics"
	"github.com/phamdangkhoamet/dkstory/pkg/types"
)

func newEngine(cfg *cfgpkg.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.TraceMiddleware())
	r.Use(cors.New(corsConfig(cfg)))
	return r
}

func corsConfig(cfg *cfgpkg.Config) cors.Config {
	c := cors.DefaultConfig()
	if cfg == nil || len(cfg.CORS.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORS.AllowOrigins
	}
	c.AddAllowHeaders("Authorization", mw.HeaderRequestID)
	c.AddExposeHeaders(mw.HeaderRequestID, "Retry-After")
	return c
}

type routeDeps struct {
	fx.In

	Log           *zap.SugaredLogger
	Cfg           *cfgpkg.Config
	Identity      *mw.IdentityResolver
	Limiter       *ratelimit.Limiter
	Accounts      *account.Service
	Novels        *catalog.NovelService
	Reader        *catalog.Reader
	Authors       *community.AuthorService
	Follows       *community.FollowService
	Favorites     *community.FavoriteService
	Notifications *community.NotificationService
	Reports       *moderation.Service
	Payments      *payment.Service
	Stats         *statistics.Service
	VipLogs       *viplog.Service
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	log := d.Log
	if d.Cfg != nil && d.Cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(d.Cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", d.Cfg.MetricsAddr)
	}

	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub)
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log), d.Identity.Resolve(log))
	handlers.RegisterAPIHealthRoutes(api)
	handlers.RegisterAuthRoutes(api.Group("/auth"), d.Accounts, log)
	handlers.RegisterNovelRoutes(api.Group("/novels"), d.Novels, d.Reader, d.Accounts, log)
	handlers.RegisterAuthorRoutes(api.Group("/authors"), d.Authors, d.Follows, log)
	handlers.RegisterReportRoutes(api.Group("/reports"), d.Reports, log)
	handlers.RegisterGenreRoutes(api.Group("/genres"), d.Novels, log)
	handlers.RegisterUserRoutes(api.Group("/users"), d.Accounts, d.VipLogs, log)

	handlers.RegisterFollowRoutes(api.Group("/follows", mw.RequireUser()), d.Follows, log)
	handlers.RegisterFavoriteRoutes(api.Group("/favorites", mw.RequireUser()), d.Favorites, log)
	handlers.RegisterNotificationRoutes(api.Group("/notifications", mw.RequireUser()), d.Notifications, log)

	admin := api.Group("/admin", mw.RequireRole(types.UserRoleAdmin))
	handlers.RegisterAdminRoutes(admin, d.Reports, d.Payments, d.Stats, log)

	if d.Cfg != nil && d.Cfg.Payments.Sandbox {
		handlers.RegisterSandboxPaymentRoutes(api.Group("/payments/sandbox"), d.Payments, log,
			mw.RateLimit(d.Limiter, ratelimit.ActionPay, log))
		log.Infow("sandbox payments enabled")
	}
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine, mw.NewIdentityResolver),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
