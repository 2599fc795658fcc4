package ordersserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.temporal.io/sdk/temporal"

	"github.com/musicstore/orders-api/internal/clients/http/remote"
	ordersapp "github.com/musicstore/orders-api/internal/orders/application"
	ordersports "github.com/musicstore/orders-api/internal/orders/ports"
	orderactivities "github.com/musicstore/orders-api/internal/platform/temporal/activities/orders"
	apierrors "github.com/musicstore/orders-api/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves the existing call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnprocessableEntity:
		problem = apierrors.ErrUnprocessable.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func respondUnprocessable(c *gin.Context, detail string) {
	respondProblem(c, apierrors.ErrUnprocessable.WithDetail(detail))
}

// respondOrderServiceError translates application, gateway, and workflow
// errors into problem responses: missing entities -> 404, business
// rejections and price violations -> 422, anything else -> 500. Gateway
// errors reach this untranslated on the read path, where snapshots are
// refreshed against entities that may have vanished upstream.
func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var applicationErr *temporal.ApplicationError
	if errors.As(err, &applicationErr) {
		// Rejections surfaced through the durable workflow path.
		if applicationErr.Type() == orderactivities.InvalidOrderErrorType {
			respondUnprocessable(c, applicationErr.Message())
			return
		}
		respondProblem(c, apierrors.ErrInternal.WithDetail(applicationErr.Message()))
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound), errors.Is(err, remote.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidInput), errors.Is(err, ordersapp.ErrInvalidOrderPrice),
		errors.Is(err, remote.ErrInvalidInput):
		respondUnprocessable(c, err.Error())
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
