package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

var statusByKind = map[string]int{
	apperror.KindDecode:       http.StatusBadRequest,
	apperror.KindValidation:   http.StatusConflict,
	apperror.KindNotFound:     http.StatusNotFound,
	apperror.KindUnauthorized: http.StatusUnauthorized,
	apperror.KindConflict:     http.StatusConflict,
	apperror.KindSettlement:   http.StatusBadGateway,
	apperror.KindUnavailable:  http.StatusServiceUnavailable,
	apperror.KindInternal:     http.StatusInternalServerError,
}

func statusOf(err error) (int, string) {
	kind := apperror.Kind(err)
	return statusByKind[kind], kind
}

func abortWithError(c *gin.Context, err error) {
	status, kind := statusOf(err)

	message := err.Error()
	if kind == apperror.KindInternal {
		message = http.StatusText(status)
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: message, Kind: kind})
}
