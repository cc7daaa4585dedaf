package recordserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studenthttpmapper "github.com/Apurer/recordkeeper/internal/domains/students/adapters/http/mapper"
)

func enroll(t *testing.T, router http.Handler, first, last string, gpa float64) studenthttpmapper.Student {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/v1/students", map[string]any{
		"firstName": first, "lastName": last, "email": first + "@school.test", "gpa": gpa,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[studenthttpmapper.Student](t, rec)
}

func TestStudentAPI_Lifecycle(t *testing.T) {
	router := newTestRouter(t)
	ada := enroll(t, router, "Ada", "Lovelace", 3.9)
	alan := enroll(t, router, "Alan", "Turing", 3.1)
	assert.True(t, ada.IsActive)

	rec := do(t, router, http.MethodGet, "/v1/students", nil)
	list := decode[[]studenthttpmapper.Student](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "Lovelace", list[0].LastName)

	rec = do(t, router, http.MethodGet, "/v1/students/search/gpa?min=3.5", nil)
	list = decode[[]studenthttpmapper.Student](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, ada.ID, list[0].ID)

	rec = do(t, router, http.MethodPatch, "/v1/students/"+itoa(alan.ID), map[string]any{"gpa": 3.95})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3.95, decode[studenthttpmapper.Student](t, rec).GPA)

	rec = do(t, router, http.MethodDelete, "/v1/students/"+itoa(ada.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/students/"+itoa(ada.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[studenthttpmapper.Student](t, rec).IsActive)

	rec = do(t, router, http.MethodGet, "/v1/students", nil)
	assert.Len(t, decode[[]studenthttpmapper.Student](t, rec), 1)
}

func TestStudentAPI_Rejections(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/students", map[string]any{"firstName": "A", "lastName": "B", "email": "nope"})
	problem := requireProblem(t, rec, http.StatusBadRequest)
	assert.Contains(t, problem.Extensions["fields"], "Email")

	rec = do(t, router, http.MethodGet, "/v1/students/search/gpa?min=x", nil)
	requireProblem(t, rec, http.StatusBadRequest)

	rec = do(t, router, http.MethodDelete, "/v1/students/12", nil)
	requireProblem(t, rec, http.StatusNotFound)
}
