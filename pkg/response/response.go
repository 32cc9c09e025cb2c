package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponseCode int

const (
	APIResponseCodeOK              APIResponseCode = 0
	APIResponseCodeBadRequest      APIResponseCode = 40000
	APIResponseCodeUnauthenticated APIResponseCode = 40100
	APIResponseCodeForbidden       APIResponseCode = 40300
	APIResponseCodeNotFound        APIResponseCode = 40400
	APIResponseCodeConflict        APIResponseCode = 40900
	APIResponseCodeTooManyRequests APIResponseCode = 42900
	APIResponseCodeError           APIResponseCode = 50000
)

var codeToStatus = map[APIResponseCode]int{
	APIResponseCodeOK:              http.StatusOK,
	APIResponseCodeBadRequest:      http.StatusBadRequest,
	APIResponseCodeUnauthenticated: http.StatusUnauthorized,
	APIResponseCodeForbidden:       http.StatusForbidden,
	APIResponseCodeNotFound:        http.StatusNotFound,
	APIResponseCodeConflict:        http.StatusConflict,
	APIResponseCodeTooManyRequests: http.StatusTooManyRequests,
	APIResponseCodeError:           http.StatusInternalServerError,
}

// HTTPStatus maps a response code onto its HTTP status.
func (c APIResponseCode) HTTPStatus() int {
	if s, ok := codeToStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / ErrorT helpers to construct instances.
type APIResponse[T any] struct {
	OK      bool            `json:"ok"`
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{OK: true, Code: APIResponseCodeOK, Message: "ok", Data: data}
}

// ErrorT returns an error response carrying a caller-facing message.
func ErrorT[T any](code APIResponseCode, message string) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: message}
}

// Fail writes an error envelope with the HTTP status belonging to code.
func Fail(c *gin.Context, code APIResponseCode, message string) {
	c.JSON(code.HTTPStatus(), ErrorT[any](code, message))
}

// AbortFail is Fail for middleware: it also stops the handler chain.
func AbortFail(c *gin.Context, code APIResponseCode, message string) {
	c.AbortWithStatusJSON(code.HTTPStatus(), ErrorT[any](code, message))
}

// OK writes a 200 envelope around data.
func OK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, OKT(data))
}
