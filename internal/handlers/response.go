package handlers

import (
	"encoding/json"
	"market/internal/apperr"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// apiResponse общий конверт ответа.
type apiResponse struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// errorResponse тело ответа для доменной ошибки.
type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

const msgAuthRequired = "인증이 필요합니다."

// statusName: 404 -> NOT_FOUND, 500 -> INTERNAL_SERVER_ERROR
func statusName(code int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, apiResponse{Code: status, Status: statusName(status), Message: message, Data: data})
}

// ok пишет 200 с данными в конверте.
func ok(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, "OK", data)
}

// badRequest пишет 400 с сообщением в конверте и пустыми данными.
func badRequest(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusBadRequest, message, nil)
}

// writeError переводит ошибку сервиса в HTTP-ответ. Не доменные ошибки логируются и отдаются как 500.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, r *http.Request, err error) {
	ae, known := apperr.From(err)
	if !known || ae.Kind == apperr.KindInternal {
		logger.Errorw("request failed", "method", r.Method, "uri", r.RequestURI, "error", err)
	}
	writeJSON(w, ae.Kind.HTTPStatus(), errorResponse{ErrorCode: ae.Code, Message: ae.Message})
}

// unauthorized: ответ для защищённых маршрутов без токена.
func unauthorized(w http.ResponseWriter, _ *http.Request) {
	writeEnvelope(w, http.StatusUnauthorized, msgAuthRequired, nil)
}
