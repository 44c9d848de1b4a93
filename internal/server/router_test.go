package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mempush/internal/model"
	"mempush/internal/service"
	"mempush/pkg/errno"
	"mempush/pkg/network"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTxID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

type call struct {
	op   string
	net  network.Network
	txid string
}

// fakeService 记录调用, 返回预设结果
type fakeService struct {
	calls []call

	submitIn  service.SubmitInput
	submitErr error
	getErr    error
	listTxs   []model.Transaction
	pushTx    *model.Transaction
	pushErr   error
	deleteErr error
}

func (f *fakeService) Submit(ctx context.Context, net network.Network, in service.SubmitInput) (*model.Transaction, error) {
	f.calls = append(f.calls, call{"submit", net, in.TxID})
	f.submitIn = in
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &model.Transaction{ID: 1, Network: string(net), TxID: testTxID, RawTx: in.RawTx, Status: model.StatusPending}, nil
}

func (f *fakeService) Get(ctx context.Context, net network.Network, txid string) (*model.Transaction, error) {
	f.calls = append(f.calls, call{"get", net, txid})
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &model.Transaction{ID: 1, Network: string(net), TxID: txid, Status: model.StatusPending}, nil
}

func (f *fakeService) List(ctx context.Context, net network.Network) ([]model.Transaction, error) {
	f.calls = append(f.calls, call{"list", net, ""})
	return f.listTxs, nil
}

func (f *fakeService) Push(ctx context.Context, net network.Network, txid string) (*model.Transaction, error) {
	f.calls = append(f.calls, call{"push", net, txid})
	return f.pushTx, f.pushErr
}

func (f *fakeService) Delete(ctx context.Context, net network.Network, txid string) error {
	f.calls = append(f.calls, call{"delete", net, txid})
	return f.deleteErr
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func newTestRouter(svc service.TransactionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHTTPRouter(svc)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&fakeService{})
	w, body := doRequest(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UP", body["status"])
}

func TestSubmitRoutesByNetwork(t *testing.T) {
	tests := []struct {
		path string
		want network.Network
	}{
		{"/signet/transaction/submit", network.Signet},
		{"/testnetv4/transaction/submit", network.Testnetv4},
		{"/transaction/submit", network.Default},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			svc := &fakeService{}
			r := newTestRouter(svc)

			w, body := doRequest(t, r, http.MethodPost, tt.path, `{"raw_tx":"0100"}`)
			assert.Equal(t, http.StatusCreated, w.Code)
			assert.Equal(t, testTxID, body["txid"])
			require.Len(t, svc.calls, 1)
			assert.Equal(t, tt.want, svc.calls[0].net)
			assert.Equal(t, "0100", svc.submitIn.RawTx)
		})
	}
}

func TestSubmitErrors(t *testing.T) {
	t.Run("service error", func(t *testing.T) {
		r := newTestRouter(&fakeService{submitErr: errno.ErrRawTxNotHex})
		w, body := doRequest(t, r, http.MethodPost, "/signet/transaction/submit", `{"raw_tx":"zz"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Raw transaction must contain only hexadecimal characters", body["error"])
	})

	t.Run("bad txid", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)
		w, body := doRequest(t, r, http.MethodPost, "/signet/transaction/submit", `{"txid":"xyz"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, body["error"], "hexadecimal")
		assert.Empty(t, svc.calls)
	})

	t.Run("not json", func(t *testing.T) {
		r := newTestRouter(&fakeService{})
		w, body := doRequest(t, r, http.MethodPost, "/signet/transaction/submit", `nope`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", body["error"])
	})
}

func TestUnknownNetworkIsNotRouted(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)
	w, body := doRequest(t, r, http.MethodPost, "/regtest/transaction/submit", `{"raw_tx":"00"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid network: regtest (valid: mainchain, testnetv3, testnetv4, signet)", body["error"])
	assert.Empty(t, svc.calls)

	w, body = doRequest(t, r, http.MethodGet, "/nothing/here", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", body["error"])
}

func TestDetailAndList(t *testing.T) {
	svc := &fakeService{listTxs: []model.Transaction{{ID: 2, TxID: "b"}, {ID: 1, TxID: "a"}}}
	r := newTestRouter(svc)

	w, body := doRequest(t, r, http.MethodGet, "/mainchain/transaction/"+testTxID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testTxID, body["txid"])

	req := httptest.NewRequest(http.MethodGet, "/testnetv3/transactions", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	var txs []model.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txs))
	assert.Len(t, txs, 2)
	assert.Equal(t, network.Testnetv3, svc.calls[1].net)

	svc.getErr = errno.ErrTxNotFound
	w, body = doRequest(t, r, http.MethodGet, "/mainchain/transaction/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Transaction not found", body["error"])
}

func TestEmptyListIsArray(t *testing.T) {
	r := newTestRouter(&fakeService{})
	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPush(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{pushTx: &model.Transaction{Status: model.StatusSuccess, PushAttempts: 1, AnalysisResult: "abc"}}
		r := newTestRouter(svc)
		w, body := doRequest(t, r, http.MethodPost, "/signet/transaction/"+testTxID+"/push", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", body["status"])
		assert.EqualValues(t, 1, body["push_attempts"])
		assert.Equal(t, "abc", body["analysis_result"])
		assert.Equal(t, call{"push", network.Signet, testTxID}, svc.calls[0])
	})

	t.Run("zero attempts still reported", func(t *testing.T) {
		svc := &fakeService{pushTx: &model.Transaction{Status: model.StatusConfirmed}}
		r := newTestRouter(svc)
		_, body := doRequest(t, r, http.MethodPost, "/signet/transaction/"+testTxID+"/push", "")
		assert.Equal(t, "confirmed", body["status"])
		assert.Contains(t, body, "push_attempts")
	})

	t.Run("explorer failure", func(t *testing.T) {
		svc := &fakeService{
			pushTx:  &model.Transaction{Status: model.StatusError, AnalysisResult: "dial tcp: refused"},
			pushErr: errno.ErrPushExplorerFailure.WithMessage("dial tcp: refused"),
		}
		r := newTestRouter(svc)
		w, body := doRequest(t, r, http.MethodPost, "/signet/transaction/"+testTxID+"/push", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "dial tcp: refused", body["error"])
		assert.Equal(t, "dial tcp: refused", body["analysis_result"])
	})

	t.Run("not found", func(t *testing.T) {
		r := newTestRouter(&fakeService{pushErr: errno.ErrTxNotFound})
		w, body := doRequest(t, r, http.MethodPost, "/signet/transaction/"+testTxID+"/push", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Transaction not found", body["error"])
		assert.NotContains(t, body, "status")
	})
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{}
		r := newTestRouter(svc)
		w, body := doRequest(t, r, http.MethodPost, "/transaction/"+testTxID+"/delete", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]interface{}{"status": "success"}, body)
		assert.Equal(t, call{"delete", network.Default, testTxID}, svc.calls[0])
	})

	t.Run("not confirmed", func(t *testing.T) {
		r := newTestRouter(&fakeService{deleteErr: errno.ErrDeleteNotConfirmed})
		w, body := doRequest(t, r, http.MethodPost, "/signet/transaction/"+testTxID+"/delete", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Only confirmed transactions can be deleted", body["error"])
	})

	t.Run("not found", func(t *testing.T) {
		r := newTestRouter(&fakeService{deleteErr: errno.ErrTxNotFound})
		w, _ := doRequest(t, r, http.MethodPost, "/signet/transaction/"+testTxID+"/delete", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
