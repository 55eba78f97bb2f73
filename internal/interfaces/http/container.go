package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	settingUsecases "cardly/internal/application/setting/usecases"
	"cardly/internal/infrastructure/auth"
	"cardly/internal/infrastructure/config"
	"cardly/internal/infrastructure/permission"
	"cardly/internal/infrastructure/ratelimit"
	"cardly/internal/infrastructure/scheduler"
	"cardly/internal/interfaces/http/middleware"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/db"
	"cardly/internal/shared/logger"
)

const (
	loginPerMinute    = 10
	redisPingTimeout  = 3 * time.Second
	viewLimiterPrefix = "view"
	loginLimitPrefix  = "login"
)

// Container holds infrastructure components, repositories, use cases and handlers,
// and wires them together.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	txManager *db.TransactionManager
	enforcer  *permission.Enforcer
	settings  *settingUsecases.SettingService
	jwtSvc    *auth.JWTService
	hasher    *auth.BcryptPasswordHasher
	limiter   ratelimit.RateLimiter
	scheduler *scheduler.SchedulerManager

	authMiddleware   *middleware.AuthMiddleware
	viewRateLimiter  *middleware.RateLimiter
	loginRateLimiter *middleware.RateLimiter
}

// NewContainer wires every component against db. It fails only when the
// permission policies cannot be loaded.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.settings = settingUsecases.NewSettingService(c.repos.settingRepo, c.log)
	c.initUseCases()
	c.initHandlers()
	c.initMiddlewares()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	c.txManager = db.NewTransactionManager(c.db)

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return err
	}
	if err := enforcer.InitDefaultPolicies(); err != nil {
		return err
	}
	c.enforcer = enforcer

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)
	c.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)

	c.limiter = ratelimit.NoopRateLimiter{}
	if c.cfg.Redis.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		client, err := ratelimit.NewRedisClient(ctx, c.cfg.Redis)
		if err != nil {
			c.log.Warnw("redis unavailable, rate limiting disabled", "addr", c.cfg.Redis.GetAddr(), "error", err)
		} else {
			c.redis = client
			c.limiter = ratelimit.NewRedisRateLimiter(client)
			c.log.Infow("redis rate limiter enabled", "addr", c.cfg.Redis.GetAddr())
		}
	}
	return nil
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.viewRateLimiter = middleware.NewRateLimiter(c.limiter, viewLimiterPrefix, c.cfg.Cards.ViewsPerMinutePerIP, c.log)
	c.loginRateLimiter = middleware.NewRateLimiter(c.limiter, loginLimitPrefix, loginPerMinute, c.log)
}

// StartBackgroundJobs starts the periodic jobs. It is called by the server only.
func (c *Container) StartBackgroundJobs() error {
	if !c.cfg.Metrics.Enabled {
		return nil
	}
	mgr, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return err
	}
	snapshot := scheduler.BatchJobFunc(func(ctx context.Context) (int, error) {
		stats, err := c.ucs.codeStats.Execute(ctx, authorization.SystemActor())
		if err != nil {
			return 0, err
		}
		return int(stats.Total), nil
	})
	if err := mgr.RegisterLedgerSnapshotJob(snapshot, c.cfg.Metrics.SnapshotInterval); err != nil {
		return err
	}
	mgr.Start()
	c.scheduler = mgr
	return nil
}

// Shutdown releases connections owned by the container. The database is closed by its owner.
func (c *Container) Shutdown() {
	if c.scheduler != nil {
		if err := c.scheduler.Stop(); err != nil {
			c.log.Warnw("failed to stop scheduler", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
