package handler

import (
	"net/http"
	"strings"

	"mempush/internal/handler/response"
	"mempush/pkg/errno"
	"mempush/pkg/network"

	"github.com/gin-gonic/gin"
)

// HealthCheck godoc
// @Summary Check system health
// @Description Get the current health status of the server
// @Tags system
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "UP",
		"version": "1.0.0",
		"service": "mempush-server",
	})
}

// NotFound 未匹配的路由; /{network}/transaction... 的网络不存在时返回 Invalid network
func NotFound(c *gin.Context) {
	segs := strings.Split(strings.Trim(c.Request.URL.Path, "/"), "/")
	if len(segs) >= 2 && !network.IsValid(segs[0]) && strings.HasPrefix(segs[1], "transaction") {
		response.Error(c, errno.ErrInvalidNetwork.WithMessage(
			"Invalid network: "+segs[0]+" (valid: "+strings.Join(network.Names(), ", ")+")"))
		return
	}
	c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Not found"})
}
