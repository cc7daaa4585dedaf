package recordserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	studenthttpmapper "github.com/Apurer/recordkeeper/internal/domains/students/adapters/http/mapper"
	studentstypes "github.com/Apurer/recordkeeper/internal/domains/students/application/types"
	studentsdomain "github.com/Apurer/recordkeeper/internal/domains/students/domain"
	studentsports "github.com/Apurer/recordkeeper/internal/domains/students/ports"
)

// StudentAPI wires HTTP transport with the students bounded context.
type StudentAPI struct {
	service studentsports.Service
}

func NewStudentAPI(service studentsports.Service) StudentAPI {
	return StudentAPI{service: service}
}

// Post /v1/students
// Enroll a student
func (api *StudentAPI) AddStudent(c *gin.Context) {
	var payload studenthttpmapper.CreateStudent
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	student, err := api.service.AddStudent(c.Request.Context(), studenthttpmapper.ToAddInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, studenthttpmapper.FromDomain(student))
}

// Get /v1/students
// List active students by name
func (api *StudentAPI) ListActiveStudents(c *gin.Context) {
	students, err := api.service.ListActiveStudents(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, studenthttpmapper.FromDomainList(students))
}

// Get /v1/students/search/gpa
// Find active students whose GPA falls within a range
func (api *StudentAPI) FindStudentsByGPA(c *gin.Context) {
	minGPA, ok := queryFloat(c, "min", studentsdomain.MinGPA)
	if !ok {
		return
	}
	maxGPA, ok := queryFloat(c, "max", studentsdomain.MaxGPA)
	if !ok {
		return
	}
	students, err := api.service.ListStudentsByGPARange(c.Request.Context(), studentstypes.GPARange{Min: minGPA, Max: maxGPA})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, studenthttpmapper.FromDomainList(students))
}

// Get /v1/students/:studentId
func (api *StudentAPI) GetStudentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "studentId")
	if !ok {
		return
	}
	student, err := api.service.GetStudentByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if student == nil {
		respondNotFound(c, "student", id)
		return
	}
	c.JSON(http.StatusOK, studenthttpmapper.FromDomain(student))
}

// Patch /v1/students/:studentId
func (api *StudentAPI) UpdateStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "studentId")
	if !ok {
		return
	}
	var payload studenthttpmapper.PatchStudent
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	student, err := api.service.UpdateStudent(c.Request.Context(), id, studenthttpmapper.ToMutationInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if student == nil {
		respondNotFound(c, "student", id)
		return
	}
	c.JSON(http.StatusOK, studenthttpmapper.FromDomain(student))
}

// Delete /v1/students/:studentId
// Deactivate a student
func (api *StudentAPI) DeleteStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "studentId")
	if !ok {
		return
	}
	found, err := api.service.DeleteStudent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		respondNotFound(c, "student", id)
		return
	}
	c.Status(http.StatusNoContent)
}
