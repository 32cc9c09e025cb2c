package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/phamdangkhoamet/dkstory/internal/app/service/account"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/catalog"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/community"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/entitlement"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/moderation"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/payment"
	"github.com/phamdangkhoamet/dkstory/pkg/logctx"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

const msgInternalError = "internal server error"

// fail maps service errors onto the response taxonomy. Anything unknown is
// logged and reported as a generic 500.
func fail(c *gin.Context, base *zap.SugaredLogger, err error) {
	var limited *account.RateLimitedError
	switch {
	case errors.As(err, &limited):
		c.Header("Retry-After", strconv.FormatInt(limited.RetryAfter, 10))
		response.Fail(c, response.APIResponseCodeTooManyRequests, err.Error())
	case errors.Is(err, payment.ErrUnauthenticated):
		response.Fail(c, response.APIResponseCodeUnauthenticated, "authentication required")
	case errors.Is(err, entitlement.ErrInvalidPlan),
		errors.Is(err, payment.ErrMissingOperator),
		errors.Is(err, account.ErrInvalidInput),
		errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, moderation.ErrInvalidInput):
		response.Fail(c, response.APIResponseCodeBadRequest, err.Error())
	case errors.Is(err, account.ErrSuspended),
		errors.Is(err, catalog.ErrForbidden):
		response.Fail(c, response.APIResponseCodeForbidden, err.Error())
	case errors.Is(err, payment.ErrUserNotFound),
		errors.Is(err, account.ErrUserNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, community.ErrNotFound),
		errors.Is(err, moderation.ErrNotFound):
		response.Fail(c, response.APIResponseCodeNotFound, err.Error())
	default:
		logctx.FromGin(c, base).Errorw("request failed", "path", c.FullPath(), "err", err)
		_ = c.Error(err)
		response.Fail(c, response.APIResponseCodeError, msgInternalError)
	}
}

func badRequest(c *gin.Context, message string) {
	response.Fail(c, response.APIResponseCodeBadRequest, message)
}

// invalidBody reports a failed ShouldBindJSON as 400. Validation failures
// name the offending fields and rules.
func invalidBody(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		badRequest(c, "invalid request body")
		return
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}
	badRequest(c, "invalid request: "+strings.Join(parts, "; "))
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
