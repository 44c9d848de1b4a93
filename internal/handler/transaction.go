package handler

import (
	"errors"
	"net/http"

	"mempush/internal/handler/request"
	"mempush/internal/handler/response"
	"mempush/internal/model"
	"mempush/internal/service"
	"mempush/pkg/errno"
	"mempush/pkg/network"
	"mempush/pkg/validator"

	"github.com/gin-gonic/gin"
)

const networkKey = "network"

// TransactionHandler 交易相关接口
type TransactionHandler struct {
	svc service.TransactionService
}

func NewTransactionHandler(svc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// BindNetwork 把路由组对应的网络写入 context
func BindNetwork(net network.Network) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(networkKey, net)
		c.Next()
	}
}

func networkFrom(c *gin.Context) network.Network {
	if v, ok := c.Get(networkKey); ok {
		if net, ok := v.(network.Network); ok {
			return net
		}
	}
	return network.Default
}

// Submit 提交原始交易
// @Summary Submit a raw transaction
// @Description Parse and store a raw transaction hex, or fetch it from the explorer by txid
// @Tags transaction
// @Accept json
// @Produce json
// @Param network path string true "Network" Enums(mainchain, testnetv3, testnetv4, signet)
// @Param request body request.SubmitTransactionRequest true "Raw transaction or txid"
// @Success 201 {object} model.Transaction
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /{network}/transaction/submit [post]
func (h *TransactionHandler) Submit(c *gin.Context) {
	var req request.SubmitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	tx, err := h.svc.Submit(c.Request.Context(), networkFrom(c), service.SubmitInput{
		RawTx: req.RawTx,
		TxID:  req.TxID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tx)
}

// Detail 交易详情
// @Summary Get a stored transaction
// @Tags transaction
// @Produce json
// @Param network path string true "Network"
// @Param txid path string true "Transaction id"
// @Success 200 {object} model.Transaction
// @Failure 404 {object} response.ErrorResponse
// @Router /{network}/transaction/{txid} [get]
func (h *TransactionHandler) Detail(c *gin.Context) {
	tx, err := h.svc.Get(c.Request.Context(), networkFrom(c), c.Param("txid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tx)
}

// List 交易列表, 新的在前
// @Summary List stored transactions of a network
// @Tags transaction
// @Produce json
// @Param network path string true "Network"
// @Success 200 {array} model.Transaction
// @Router /{network}/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.svc.List(c.Request.Context(), networkFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	response.Success(c, txs)
}

// Push 广播到 mempool
// @Summary Push a stored transaction to the mempool
// @Tags transaction
// @Produce json
// @Param network path string true "Network"
// @Param txid path string true "Transaction id"
// @Success 200 {object} response.StatusResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.StatusResponse
// @Router /{network}/transaction/{txid}/push [post]
func (h *TransactionHandler) Push(c *gin.Context) {
	tx, err := h.svc.Push(c.Request.Context(), networkFrom(c), c.Param("txid"))
	if err != nil {
		if tx == nil {
			response.Error(c, err)
			return
		}
		_, status, msg := errno.Decode(err)
		c.JSON(status, response.StatusResponse{
			Status:         model.StatusError,
			Error:          msg,
			AnalysisResult: tx.AnalysisResult,
		})
		return
	}

	attempts := tx.PushAttempts
	response.Success(c, response.StatusResponse{
		Status:         tx.Status,
		PushAttempts:   &attempts,
		AnalysisResult: tx.AnalysisResult,
	})
}

// Delete 删除已确认的交易
// @Summary Delete a confirmed transaction
// @Tags transaction
// @Produce json
// @Param network path string true "Network"
// @Param txid path string true "Transaction id"
// @Success 200 {object} response.StatusResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /{network}/transaction/{txid}/delete [post]
func (h *TransactionHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), networkFrom(c), c.Param("txid"))
	if errors.Is(err, errno.ErrDeleteNotConfirmed) {
		response.StatusError(c, err)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.StatusResponse{Status: "success"})
}
