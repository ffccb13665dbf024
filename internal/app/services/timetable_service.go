package services

import (
	"context"
	"fmt"

	"github.com/campushub/campushub/internal/app/academic"
	authz "github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// TimetableService handles class scheduling with conflict detection.
// A slot conflicts when its minute interval overlaps another slot in the
// same term that shares a room, a faculty member or a course. Intervals
// are half-open, so back-to-back slots never collide.
type TimetableService struct {
	timetableRepo *repositories.TimetableRepository
	courseRepo    *repositories.CourseRepository
	studentRepo   *repositories.StudentRepository
}

// NewTimetableService creates a new TimetableService
func NewTimetableService(timetableRepo *repositories.TimetableRepository, courseRepo *repositories.CourseRepository, studentRepo *repositories.StudentRepository) *TimetableService {
	return &TimetableService{
		timetableRepo: timetableRepo,
		courseRepo:    courseRepo,
		studentRepo:   studentRepo,
	}
}

// ConflictError carries the slots that blocked a create or update
type ConflictError struct {
	Conflicts []dto.ConflictDetail
}

func (e *ConflictError) Error() string {
	return apperrors.ErrScheduleConflict.Error()
}

// Unwrap lets callers match the sentinel with errors.Is
func (e *ConflictError) Unwrap() error {
	return apperrors.ErrScheduleConflict
}

// findConflicts checks the new slot's interval against candidate slots
// sharing its day, term and room, faculty or course
func (s *TimetableService) findConflicts(ctx context.Context, slot *models.TimetableSlot, excludeID int64) ([]dto.ConflictDetail, error) {
	interval, err := academic.NewInterval(slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	candidates, err := s.timetableRepo.ListCandidates(ctx, slot, excludeID)
	if err != nil {
		return nil, err
	}

	var conflicts []dto.ConflictDetail
	for _, other := range candidates {
		otherInterval, err := academic.NewInterval(other.StartTime, other.EndTime)
		if err != nil {
			continue
		}
		if !interval.Overlaps(otherInterval) {
			continue
		}

		reason := ""
		switch {
		case other.Room == slot.Room:
			reason = fmt.Sprintf("room %s is occupied", other.Room)
		case other.FacultyUserID == slot.FacultyUserID:
			reason = "faculty member teaches another class at this time"
		default:
			reason = "course already meets at this time"
		}
		conflicts = append(conflicts, dto.ConflictDetail{
			ConflictingSlotID: other.ID,
			Reason:            reason,
			DayOfWeek:         string(other.DayOfWeek),
			StartTime:         other.StartTime,
			EndTime:           other.EndTime,
		})
	}
	return conflicts, nil
}

// CreateSlot schedules a new class meeting after conflict checks
func (s *TimetableService) CreateSlot(ctx context.Context, req *dto.CreateTimetableSlotRequest) (*models.TimetableSlot, error) {
	if !models.ValidDayOfWeek(req.DayOfWeek) {
		return nil, fmt.Errorf("%w: unknown day of week %q", apperrors.ErrValidationFailed, req.DayOfWeek)
	}
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	slot := &models.TimetableSlot{
		CourseID:      req.CourseID,
		FacultyUserID: req.FacultyUserID,
		DayOfWeek:     req.DayOfWeek,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Room:          req.Room,
		Semester:      req.Semester,
		AcademicYear:  req.AcademicYear,
	}

	conflicts, err := s.findConflicts(ctx, slot, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	if err := s.timetableRepo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// GetSlotByID retrieves a slot by ID
func (s *TimetableService) GetSlotByID(ctx context.Context, id int64) (*models.TimetableSlot, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid slot ID", apperrors.ErrValidationFailed)
	}
	return s.timetableRepo.GetByID(ctx, id)
}

// ListSlots retrieves slots filtered by course, faculty, day, term or room
func (s *TimetableService) ListSlots(ctx context.Context, filters repositories.TimetableFilters) ([]models.TimetableSlot, error) {
	return s.timetableRepo.List(ctx, filters)
}

// UpdateSlot reschedules an existing slot after conflict checks, skipping
// the slot itself as a candidate
func (s *TimetableService) UpdateSlot(ctx context.Context, slotID int64, req *dto.UpdateTimetableSlotRequest) (*models.TimetableSlot, error) {
	if !models.ValidDayOfWeek(req.DayOfWeek) {
		return nil, fmt.Errorf("%w: unknown day of week %q", apperrors.ErrValidationFailed, req.DayOfWeek)
	}

	slot, err := s.timetableRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	slot.FacultyUserID = req.FacultyUserID
	slot.DayOfWeek = req.DayOfWeek
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.Room = req.Room

	conflicts, err := s.findConflicts(ctx, slot, slot.ID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	if err := s.timetableRepo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// DeleteSlot removes a slot
func (s *TimetableService) DeleteSlot(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid slot ID", apperrors.ErrValidationFailed)
	}
	return s.timetableRepo.Delete(ctx, id)
}

// StudentTimetable returns the weekly schedule of a student's active
// enrollments for a term. Students may only read their own schedule.
func (s *TimetableService) StudentTimetable(ctx context.Context, actor authz.Actor, studentID int64, semester models.Semester, academicYear int) ([]models.TimetableSlot, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessStudentRecord(actor, student.UserID) {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.timetableRepo.ListForStudent(ctx, studentID, semester, academicYear)
}

// FacultyTimetable returns the weekly schedule of a faculty member
func (s *TimetableService) FacultyTimetable(ctx context.Context, facultyUserID int64, semester *models.Semester, academicYear *int) ([]models.TimetableSlot, error) {
	filters := repositories.TimetableFilters{
		FacultyUserID: &facultyUserID,
		Semester:      semester,
		AcademicYear:  academicYear,
	}
	return s.timetableRepo.List(ctx, filters)
}
