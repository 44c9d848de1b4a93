package server

import (
	"mempush/internal/handler"
	"mempush/internal/server/routes"
	"mempush/internal/service"
	"mempush/pkg/monitor"
	"mempush/pkg/network"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(svc service.TransactionService) *gin.Engine {
	// 0. 初始化监控指标
	monitor.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(monitor.PrometheusMiddleware())

	// 3. 注册基础路由
	r.NoRoute(handler.NotFound)
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. 每个网络一个路由组, 不带前缀的路由属于默认网络
	txHandler := handler.NewTransactionHandler(svc)
	for _, net := range network.All {
		routes.RegisterTransactionRoutes(r.Group("/"+net.String(), handler.BindNetwork(net)), txHandler)
	}
	routes.RegisterTransactionRoutes(r.Group("", handler.BindNetwork(network.Default)), txHandler)

	return r
}
