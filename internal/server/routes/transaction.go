package routes

import (
	"mempush/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes 注册某个网络组下的交易接口
func RegisterTransactionRoutes(rg *gin.RouterGroup, h *handler.TransactionHandler) {
	rg.GET("/transactions", h.List)

	txGroup := rg.Group("/transaction")
	{
		txGroup.POST("/submit", h.Submit)
		txGroup.GET("/:txid", h.Detail)
		txGroup.POST("/:txid/push", h.Push)
		txGroup.POST("/:txid/delete", h.Delete)
	}
}
