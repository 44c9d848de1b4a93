package main

import (
	"time"

	"mempush/internal/model"
	"mempush/internal/server"
	"mempush/internal/service"
	"mempush/internal/service/explorer"
	"mempush/internal/service/mq"

	"mempush/pkg/cache"
	"mempush/pkg/config"
	"mempush/pkg/database"
	"mempush/pkg/lock"
	"mempush/pkg/logger"
	"mempush/pkg/network"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "mempush/docs/swagger"
)

// @title mempush API
// @version 1.0
// @description Raw transaction store and mempool broadcaster for mainchain, testnetv3, testnetv4 and signet

// @host localhost:3000
// @BasePath /
func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	isDev := config.Global.App.Env == "development"
	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 连接数据库
	db, err := database.ConnectPostgres(config.Global.DB.PostgresDSN(), isDev)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	if isDev {
		logger.Info("开发环境: 尝试自动迁移 Schema (GORM AutoMigrate)...")
		if err := db.AutoMigrate(model.AllModels()...); err != nil {
			logger.Fatal("数据库自动迁移失败", zap.Error(err))
		}
		logger.Info("数据库自动迁移完成 (Dev Mode)")
	} else {
		logger.Info("生产环境: 跳过 AutoMigrate，请使用 migrate 工具管理 Schema")
	}

	// 3. 连接 Redis (可选)
	var rdb *redis.Client
	if config.Global.Redis.Addr != "" {
		rdb, err = database.ConnectRedis(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
		if err != nil {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
	} else {
		logger.Warn("未配置 Redis: 仅使用内存缓存, rebroadcast 不加分布式锁")
	}

	// 4. 初始化缓存
	// L1: Memory, L2: Redis (如果有)
	var txCache cache.Cache = cache.NewMemoryCache(time.Hour, 10*time.Minute)
	if rdb != nil {
		txCache = cache.NewMultiLevelCache(txCache, cache.NewRedisCache(rdb, "mempush:"))
	}

	// 5. 区块浏览器 (mempool.space Esplora API)
	opts := []explorer.Option{explorer.WithCache(txCache, config.Global.Explorer.CacheTTL)}
	for name, url := range config.Global.Explorer.BaseURLs {
		net, err := network.Parse(name)
		if err != nil {
			logger.Fatal("explorer.base_urls 配置错误", zap.Error(err))
		}
		opts = append(opts, explorer.WithBaseURL(net, url))
	}
	esplora := explorer.NewEsplora(config.Global.Explorer.Timeout, opts...)

	// 6. 初始化消息队列
	var producer mq.Producer = mq.NopProducer{}
	topic := config.Global.Kafka.Topic
	switch config.Global.Redis.MQType {
	case "kafka":
		logger.Info("使用 Kafka 作为消息队列...", zap.Strings("brokers", config.Global.Kafka.Brokers))
		producer = mq.NewKafkaProducer(config.Global.Kafka.Brokers, topic)
	case "redis":
		if rdb == nil {
			logger.Fatal("redis.mq_type=redis 需要配置 redis.addr")
		}
		logger.Info("使用 Redis Streams 作为消息队列...")
		producer = mq.NewRedisProducer(rdb, 10000)
	default:
		logger.Info("未启用消息队列")
	}

	// 7. 业务服务
	store := service.NewGormStore(db)
	txService := service.NewTransactionService(store, esplora, producer, topic)

	// 8. 定时重新广播未确认交易
	stoppers := []server.Stopper{}
	if config.Global.Rebroadcast.Enabled {
		var locker lock.DistributedLock = lock.LocalLock{}
		if rdb != nil {
			locker = lock.NewRedisLock(rdb)
		}
		rb := service.NewRebroadcaster(
			config.Global.Rebroadcast.Spec,
			store,
			txService,
			locker,
			config.Global.Rebroadcast.LockTTL,
			config.Global.Rebroadcast.PageSize,
		)
		if err := rb.Start(); err != nil {
			logger.Fatal("Rebroadcaster 启动失败", zap.Error(err))
		}
		stoppers = append(stoppers, rb)
	}
	stoppers = append(stoppers, server.StopFunc(func() {
		if err := producer.Close(); err != nil {
			logger.Error("关闭消息队列失败", zap.Error(err))
		}
	}))

	// 9. HTTP Router + App
	r := server.NewHTTPRouter(txService)
	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r, stoppers...)

	// 运行 (阻塞)
	app.Run()

	// 10. 退出后资源清理
	logger.Info("正在关闭数据库连接...")
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}
	logger.Info("系统已退出")
}
