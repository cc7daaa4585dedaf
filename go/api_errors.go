package recordserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	booksapp "github.com/Apurer/recordkeeper/internal/domains/books/application"
	booksports "github.com/Apurer/recordkeeper/internal/domains/books/ports"
	conversionsapp "github.com/Apurer/recordkeeper/internal/domains/conversions/application"
	productsapp "github.com/Apurer/recordkeeper/internal/domains/products/application"
	productsports "github.com/Apurer/recordkeeper/internal/domains/products/ports"
	studentsapp "github.com/Apurer/recordkeeper/internal/domains/students/application"
	studentsports "github.com/Apurer/recordkeeper/internal/domains/students/ports"
	ticketsapp "github.com/Apurer/recordkeeper/internal/domains/tickets/application"
	ticketsdomain "github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
	ticketsports "github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
	apierrors "github.com/Apurer/recordkeeper/internal/shared/errors"
	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

// responder maps application errors of every bounded context onto problem details.
var responder = apierrors.NewChainedResponder("",
	validationProblem,
	matchAny(apierrors.ErrBadRequest,
		booksapp.ErrInvalidInput, studentsapp.ErrInvalidInput, ticketsapp.ErrInvalidInput,
		productsapp.ErrInvalidInput, conversionsapp.ErrInvalidInput),
	matchAny(apierrors.ErrConflict,
		booksports.ErrConflict, ticketsports.ErrConflict, ticketsdomain.ErrInvalidTransition),
	matchAny(apierrors.ErrNotFound,
		booksports.ErrNotFound, studentsports.ErrNotFound, ticketsports.ErrNotFound, productsports.ErrNotFound),
)

func validationProblem(err error) (apierrors.ProblemDetail, bool) {
	fields, ok := validation.Fields(err)
	if !ok {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.NewValidationProblem(fields).WithDetail(err.Error()), true
}

func matchAny(problem apierrors.ProblemDetail, targets ...error) apierrors.ErrorMapper {
	return func(err error) (apierrors.ProblemDetail, bool) {
		for _, target := range targets {
			if errors.Is(err, target) {
				return problem.WithDetail(err.Error()), true
			}
		}
		return apierrors.ProblemDetail{}, false
	}
}

// respondServiceError writes the problem matching err.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondError covers transport-level failures such as malformed payloads.
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
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	apierrors.Respond(c, problem)
}

func respondNotFound(c *gin.Context, resource string, identifier any) {
	responder.NotFound(c, resource, identifier)
}
