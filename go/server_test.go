package recordserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	booksmemory "github.com/Apurer/recordkeeper/internal/domains/books/adapters/memory"
	booksapp "github.com/Apurer/recordkeeper/internal/domains/books/application"
	conversionsapp "github.com/Apurer/recordkeeper/internal/domains/conversions/application"
	productsmemory "github.com/Apurer/recordkeeper/internal/domains/products/adapters/memory"
	productsapp "github.com/Apurer/recordkeeper/internal/domains/products/application"
	studentsmemory "github.com/Apurer/recordkeeper/internal/domains/students/adapters/memory"
	studentsapp "github.com/Apurer/recordkeeper/internal/domains/students/application"
	ticketsmemory "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/memory"
	ticketsworkflows "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/workflows"
	ticketsapp "github.com/Apurer/recordkeeper/internal/domains/tickets/application"
	apierrors "github.com/Apurer/recordkeeper/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, middleware ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	tickets := ticketsapp.NewService(ticketsmemory.NewRepository())
	return NewRouter(ApiHandleFunctions{
		BookAPI:       NewBookAPI(booksapp.NewService(booksmemory.NewRepository())),
		StudentAPI:    NewStudentAPI(studentsapp.NewService(studentsmemory.NewRepository())),
		TicketAPI:     NewTicketAPI(tickets, ticketsworkflows.NewInlineCheckout(tickets)),
		ProductAPI:    NewProductAPI(productsapp.NewService(productsmemory.NewRepository())),
		ConversionAPI: NewConversionAPI(conversionsapp.NewService()),
	}, middleware...)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireProblem(t *testing.T, rec *httptest.ResponseRecorder, status int) apierrors.ProblemDetail {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	return decode[apierrors.ProblemDetail](t, rec)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
