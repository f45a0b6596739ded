package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrDBInternal = errors.New("database internal error")
	ErrNotFound   = errors.New("record not found")

	ErrBadID              = errors.New("bad id")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidJSONPayload = errors.New("invalid JSON payload")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrPhoneRequired      = errors.New("phone number is required")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrOrderRejected      = errors.New("order rejected by remote API")
	ErrRemoteAPI          = errors.New("remote API unavailable")
	ErrBadResponse        = errors.New("unexpected response format")

	ErrIndexing = errors.New("indexing error")
	ErrSearch   = errors.New("search error")
)

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

// SendErrorTo пишет {"message": ...} с заданным статусом, 5xx дополнительно логируются
func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	if statusCode >= http.StatusInternalServerError {
		logger.Errorw("request failed", "status", statusCode, "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}
