package response

import (
	"net/http"

	"mempush/pkg/errno"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应, 客户端读取 error 字段展示给用户
type ErrorResponse struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error"`
}

// StatusResponse push / delete 的响应
type StatusResponse struct {
	Status         string `json:"status"`
	PushAttempts   *int   `json:"push_attempts,omitempty"`
	AnalysisResult string `json:"analysis_result,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Success returns a 200 response with data
func Success(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

func JSON(c *gin.Context, status int, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(status, data)
}

// Error 根据 errno 决定 HTTP 状态码, body 为 {"error": msg}
func Error(c *gin.Context, err error) {
	_, status, msg := errno.Decode(err)
	c.JSON(status, ErrorResponse{Error: msg})
}

// StatusError 与 Error 相同, 但 body 额外带上 "status": "error"
func StatusError(c *gin.Context, err error) {
	_, status, msg := errno.Decode(err)
	c.JSON(status, ErrorResponse{Status: "error", Error: msg})
}
