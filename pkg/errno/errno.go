package errno

import (
	"errors"
	"net/http"
)

// Errno defines the error code logic.
// HTTPStatus 是返回给客户端的状态码, Message 会作为 {"error": ...} 返回
type Errno struct {
	Code       int
	HTTPStatus int
	Message    string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage 复制一个错误并替换 Message，Code/HTTPStatus 保持不变
func (e Errno) WithMessage(msg string) Errno {
	e.Message = msg
	return e
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, int, string) {
	if err == nil {
		return OK.Code, OK.HTTPStatus, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, typed.HTTPStatus, typed.Message
	}
	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, ptr.HTTPStatus, ptr.Message
	}
	return InternalServerError.Code, InternalServerError.HTTPStatus, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, HTTPStatus: http.StatusOK, Message: "Success"}
	InternalServerError = Errno{Code: 10001, HTTPStatus: http.StatusInternalServerError, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, HTTPStatus: http.StatusBadRequest, Message: "Error occurred while binding the request body to the struct"}
	ErrDatabase         = Errno{Code: 10004, HTTPStatus: http.StatusInternalServerError, Message: "Database error"}
	ErrInvalidNetwork   = Errno{Code: 10005, HTTPStatus: http.StatusNotFound, Message: "Invalid network"}
)

// Business Errors (20000+)
var (
	ErrRawTxRequired       = Errno{Code: 20101, HTTPStatus: http.StatusBadRequest, Message: "Raw transaction is required"}
	ErrRawTxNotHex         = Errno{Code: 20102, HTTPStatus: http.StatusBadRequest, Message: "Raw transaction must contain only hexadecimal characters"}
	ErrInvalidTxFormat     = Errno{Code: 20103, HTTPStatus: http.StatusBadRequest, Message: "Invalid transaction format"}
	ErrTxIDMismatch        = Errno{Code: 20104, HTTPStatus: http.StatusBadRequest, Message: "Provided txid does not match calculated txid"}
	ErrTxExists            = Errno{Code: 20105, HTTPStatus: http.StatusBadRequest, Message: "Transaction already submitted"}
	ErrTxNotFound          = Errno{Code: 20201, HTTPStatus: http.StatusNotFound, Message: "Transaction not found"}
	ErrExplorerFetch       = Errno{Code: 20202, HTTPStatus: http.StatusBadRequest, Message: "Error fetching transaction"}
	ErrDeleteNotConfirmed  = Errno{Code: 20301, HTTPStatus: http.StatusForbidden, Message: "Only confirmed transactions can be deleted"}
	ErrPushExplorerFailure = Errno{Code: 20401, HTTPStatus: http.StatusInternalServerError, Message: "Error pushing transaction"}
)
