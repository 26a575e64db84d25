package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accessUsecases "keygate/internal/application/access/usecases"
	"keygate/internal/infrastructure/config"
	"keygate/internal/infrastructure/lock"
	"keygate/internal/infrastructure/mirrorstore"
	sharedConfig "keygate/internal/shared/config"
	"keygate/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases
// and handlers, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Snapshot store and grant lock
	store  *mirrorstore.FileStore
	locker accessUsecases.Locker

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers
}

// NewContainer creates a new Container with all dependencies wired together.
// A redis grant lock requires a reachable redis server at startup.
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

	c.repos = newRepositories(db, log)
	c.ucs = newUseCases(c.repos, c.store, c.locker, cfg.Access.IdempotentRevoke, log)
	c.hdlrs = newHandlers(c.ucs, c.pingDatabase, log)

	return c, nil
}

func (c *Container) initInfrastructure() error {
	c.store = mirrorstore.NewFileStore(c.cfg.Mirror, c.log.Named("mirror"))

	switch c.cfg.Access.GrantLock {
	case sharedConfig.GrantLockRedis:
		client, err := initRedis(c.cfg, c.log)
		if err != nil {
			return err
		}
		c.redis = client
		c.locker = lock.NewRedisLocker(client, c.cfg.Access.GrantLockTTL(), c.cfg.Access.GrantLockWait(), c.log.Named("lock"))
	default:
		c.locker = lock.NewLocalLocker(c.cfg.Access.GrantLockWait())
	}

	c.log.Infow("infrastructure initialized",
		"mirror_root", c.cfg.Mirror.Root,
		"grant_lock", c.cfg.Access.GrantLock,
		"idempotent_revoke", c.cfg.Access.IdempotentRevoke,
	)
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

func (c *Container) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Shutdown releases connections the container opened itself. The database
// is owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
