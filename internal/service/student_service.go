package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/RubachokBoss/student-registry/internal/models"
	"github.com/RubachokBoss/student-registry/internal/repository"
	"github.com/RubachokBoss/student-registry/internal/service/integration"
	"github.com/rs/zerolog"
)

// emailPattern allows word characters with at most one '.' or '-'
// between runs and a 2-3 character final label.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type StudentService interface {
	CreateStudent(ctx context.Context, req *models.StudentRequest) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	UpdateStudent(ctx context.Context, id string, req *models.StudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) (*models.Student, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
	publisher   integration.EventPublisher
	logger      zerolog.Logger
}

func NewStudentService(studentRepo repository.StudentRepository, publisher integration.EventPublisher, logger zerolog.Logger) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// normalize trims every field and lowercases the email in place.
func normalize(req *models.StudentRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	req.City = strings.TrimSpace(req.City)
	req.State = strings.TrimSpace(req.State)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
}

func validate(req *models.StudentRequest) error {
	normalize(req)

	if req.Name == "" || req.Address == "" || req.City == "" ||
		req.State == "" || req.Email == "" || req.Phone == "" {
		return models.ErrFieldsRequired
	}

	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("%w: %s", models.ErrInvalidEmail, req.Email)
	}

	return nil
}

func (s *studentService) CreateStudent(ctx context.Context, req *models.StudentRequest) (*models.Student, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// Advisory pre-check. The unique index on email is the real
	// guarantee: a concurrent writer can slip past this lookup, and the
	// insert below reports the duplicate-key error as the same failure.
	existing, err := s.studentRepo.GetByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check existing student: %w", err)
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	now := time.Now().UTC()
	student := &models.Student{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("student_id", student.ID.Hex()).
		Str("email", student.Email).
		Msg("Student created")

	s.publish(ctx, models.StudentCreated, student)

	return student, nil
}

func (s *studentService) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all students: %w", err)
	}

	return students, nil
}

func (s *studentService) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, models.ErrStudentNotFound
	}

	return student, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id string, req *models.StudentRequest) (*models.Student, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.studentRepo.GetByEmail(ctx, req.Email, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	student := &models.Student{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Email:     req.Email,
		Phone:     req.Phone,
		UpdatedAt: time.Now().UTC(),
	}

	updated, err := s.studentRepo.Update(ctx, id, student)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.ErrStudentNotFound
	}

	s.logger.Info().
		Str("student_id", updated.ID.Hex()).
		Str("email", updated.Email).
		Msg("Student updated")

	s.publish(ctx, models.StudentUpdated, updated)

	return updated, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, id string) (*models.Student, error) {
	deleted, err := s.studentRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete student: %w", err)
	}
	if deleted == nil {
		return nil, models.ErrStudentNotFound
	}

	s.logger.Info().
		Str("student_id", deleted.ID.Hex()).
		Msg("Student deleted")

	s.publish(ctx, models.StudentDeleted, deleted)

	return deleted, nil
}

// publish sends a lifecycle event best-effort: failures are logged and
// never fail the request.
func (s *studentService) publish(ctx context.Context, action string, student *models.Student) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishStudentEvent(ctx, action, student); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("Failed to publish student event")
	}
}
