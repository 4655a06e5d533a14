package httpd

import (
	"errors"
	"net/http"

	"github.com/RubachokBoss/student-registry/internal/models"
	"github.com/RubachokBoss/student-registry/pkg/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.GetAllStudents(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch students")
		utils.ErrorDetail(w, http.StatusInternalServerError, "Failed to fetch students", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, students)
}

func (h *Handler) GetStudentByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	student, err := h.studentService.GetStudentByID(r.Context(), id)
	if err != nil {
		h.handleStudentError(w, err, http.StatusInternalServerError, "Failed to fetch student")
		return
	}

	utils.WriteJSON(w, http.StatusOK, student)
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.StudentRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	student, err := h.studentService.CreateStudent(r.Context(), &req)
	if err != nil {
		// Write-path store failures surface as 400 with the detail.
		h.handleStudentError(w, err, http.StatusBadRequest, "Failed to create student")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, student)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.StudentRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	student, err := h.studentService.UpdateStudent(r.Context(), id, &req)
	if err != nil {
		h.handleStudentError(w, err, http.StatusBadRequest, "Failed to update student")
		return
	}

	utils.WriteJSON(w, http.StatusOK, student)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.studentService.DeleteStudent(r.Context(), id); err != nil {
		h.handleStudentError(w, err, http.StatusInternalServerError, "Failed to delete student")
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.MessageResponse{
		Message: "Student deleted successfully",
	})
}

// handleStudentError maps service failures to status codes. Anything
// outside the known taxonomy falls back to the per-endpoint status:
// 500 on read paths, 400 on write paths.
func (h *Handler) handleStudentError(w http.ResponseWriter, err error, fallbackStatus int, fallbackMsg string) {
	switch {
	case errors.Is(err, models.ErrStudentNotFound):
		utils.ErrorMessage(w, http.StatusNotFound, "Student not found")
	case errors.Is(err, models.ErrEmailTaken):
		utils.ErrorMessage(w, http.StatusBadRequest, "Student with this email already exists")
	case errors.Is(err, models.ErrFieldsRequired):
		utils.ErrorMessage(w, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, models.ErrInvalidEmail):
		utils.ErrorDetail(w, http.StatusBadRequest, fallbackMsg, err)
	default:
		h.logger.Error().Err(err).Msg(fallbackMsg)
		utils.ErrorDetail(w, fallbackStatus, fallbackMsg, err)
	}
}
