package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"cardbank/internal/ledger"
	"cardbank/internal/services"
	"cardbank/pkg"
	middleware "cardbank/pkg/middlewares"
)

// newTestRouter wires a fresh in-memory bank behind the real route setup.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	reg := ledger.NewRegistry()
	engine := ledger.NewEngine(reg)
	accountHandler := NewAccountHandler(logger, services.NewAccountService(logger, reg))
	transferHandler := NewTransferHandler(logger, services.NewTransferService(logger, reg, engine))
	baseHandler := NewBaseHandler(logger, "testbank")

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.TraceID())
	accountHandler.RegisterRoutes(api)
	transferHandler.RegisterRoutes(api)
	baseHandler.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSuccess(t *testing.T, w *httptest.ResponseRecorder) pkg.APIResponse {
	t.Helper()
	var out pkg.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.ErrorResponse {
	t.Helper()
	var out pkg.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// createAccount creates an account through the API and returns its card number text.
func createAccount(t *testing.T, r *gin.Engine, name, phone, balance string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/accounts", map[string]string{
		"fullName":       name,
		"phoneNumber":    phone,
		"initialBalance": balance,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	out := decodeSuccess(t, w)
	account, ok := out.Data["account"].(map[string]interface{})
	assert.True(t, ok)
	num, ok := account["cardNumber"].(float64) // JSON numbers decode as float64
	assert.True(t, ok)
	return strconv.FormatInt(int64(num), 10)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "testbank")
}

func TestCreateAccount_ReturnsTraceHeader(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/accounts", map[string]string{
		"fullName":       "Ivan Petrov",
		"phoneNumber":    "+100",
		"initialBalance": "100",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get(pkg.HeaderTraceId))

	out := decodeSuccess(t, w)
	assert.NotEmpty(t, out.TraceID)
}

func TestCreateAccount_InvalidBalance(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/accounts", map[string]string{
		"fullName":       "Ivan Petrov",
		"phoneNumber":    "+100",
		"initialBalance": "-5",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, pkg.ErrInvalidAmountCode.Code, decodeError(t, w).Code)
}

func TestCreateAccount_MissingFields(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/accounts", map[string]string{
		"fullName": "Ivan Petrov",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, pkg.ErrInvalidInputCode.Code, decodeError(t, w).Code)
}

func TestGetAccount_NotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/accounts/10000001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, pkg.ErrAccountNotFoundCode.Code, decodeError(t, w).Code)
}

func TestDeleteAccount_ThenLookupFails(t *testing.T) {
	r := newTestRouter(t)
	card := createAccount(t, r, "Ivan Petrov", "+100", "100")

	w := doJSON(t, r, http.MethodDelete, "/api/v1/accounts/"+card, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/accounts/"+card, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransfer_EndToEnd(t *testing.T) {
	r := newTestRouter(t)
	sender := createAccount(t, r, "Sender", "+1", "50")
	recipient := createAccount(t, r, "Recipient", "+2", "0")

	w := doJSON(t, r, http.MethodPost, "/api/v1/transfers", map[string]string{
		"senderCard":    sender,
		"recipientCard": recipient,
		"amount":        "30",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Balances after the transfer
	w = doJSON(t, r, http.MethodGet, "/api/v1/accounts/"+sender+"/balance", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":20`)

	w = doJSON(t, r, http.MethodGet, "/api/v1/accounts/"+recipient+"/balance", nil)
	assert.Contains(t, w.Body.String(), `"balance":30`)

	// Ledger has exactly one entry
	w = doJSON(t, r, http.MethodGet, "/api/v1/transfers", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	out := decodeSuccess(t, w)
	txs, ok := out.Data["transactions"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, txs, 1)
}

func TestTransfer_ByPhone_UnknownRecipient(t *testing.T) {
	r := newTestRouter(t)
	sender := createAccount(t, r, "Sender", "+1", "50")

	w := doJSON(t, r, http.MethodPost, "/api/v1/transfers", map[string]string{
		"senderCard":     sender,
		"recipientPhone": "nonexistent",
		"amount":         "10",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, pkg.ErrRecipientNotFoundCode.Code, decodeError(t, w).Code)

	// Sender keeps its balance
	w = doJSON(t, r, http.MethodGet, "/api/v1/accounts/"+sender+"/balance", nil)
	assert.Contains(t, w.Body.String(), `"balance":50`)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	r := newTestRouter(t)
	sender := createAccount(t, r, "Sender", "+1", "20")
	recipient := createAccount(t, r, "Recipient", "+2", "0")

	w := doJSON(t, r, http.MethodPost, "/api/v1/transfers", map[string]string{
		"senderCard":    sender,
		"recipientCard": recipient,
		"amount":        "1000",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, pkg.ErrInsufficientFundsCode.Code, decodeError(t, w).Code)
}

func TestTransfer_BothSelectorsRejected(t *testing.T) {
	r := newTestRouter(t)
	sender := createAccount(t, r, "Sender", "+1", "50")
	recipient := createAccount(t, r, "Recipient", "+2", "0")

	w := doJSON(t, r, http.MethodPost, "/api/v1/transfers", map[string]string{
		"senderCard":     sender,
		"recipientCard":  recipient,
		"recipientPhone": "+2",
		"amount":         "10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, pkg.ErrInvalidInputCode.Code, decodeError(t, w).Code)
}

func TestTransactionHistory_SurvivesDeletion(t *testing.T) {
	r := newTestRouter(t)
	sender := createAccount(t, r, "Sender", "+1", "50")
	recipient := createAccount(t, r, "Recipient", "+2", "0")

	w := doJSON(t, r, http.MethodPost, "/api/v1/transfers", map[string]string{
		"senderCard":    sender,
		"recipientCard": recipient,
		"amount":        "30",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/accounts/"+sender, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/accounts/"+sender+"/transactions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	out := decodeSuccess(t, w)
	txs, ok := out.Data["transactions"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, txs, 1)
}
