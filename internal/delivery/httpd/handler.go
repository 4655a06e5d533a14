package httpd

import (
	"net/http"

	"github.com/RubachokBoss/student-registry/internal/models"
	"github.com/RubachokBoss/student-registry/internal/service"
	"github.com/RubachokBoss/student-registry/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	studentService service.StudentService
	logger         zerolog.Logger
}

func NewHandler(studentService service.StudentService, logger zerolog.Logger) *Handler {
	return &Handler{
		studentService: studentService,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api", func(api chi.Router) {
		api.Get("/health", h.HealthCheck)

		api.Route("/students", func(r chi.Router) {
			r.Get("/", h.GetAllStudents)
			r.Post("/", h.CreateStudent)
			r.Get("/{id}", h.GetStudentByID)
			r.Put("/{id}", h.UpdateStudent)
			r.Delete("/{id}", h.DeleteStudent)
		})
	})

	// Unmatched routes get an explicit JSON 404 instead of the default
	// plain-text response.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ErrorMessage(w, http.StatusNotFound, "Route not found")
	})
}

// HealthCheck reports liveness only. It deliberately performs no store
// access, so it stays green while the database is down.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.MessageResponse{
		Message: "Student Registry API is up and running",
	})
}
