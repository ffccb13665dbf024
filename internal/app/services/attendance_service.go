package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushub/campushub/internal/app/academic"
	authz "github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/db"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/helpers"
	"github.com/jackc/pgx/v5"
)

// AttendanceService records class attendance. Every write moves the
// student's denormalized counters inside the same transaction, so the
// counters never drift from the records.
type AttendanceService struct {
	db             *db.PostgresDB
	attendanceRepo *repositories.AttendanceRepository
	studentRepo    *repositories.StudentRepository
	courseRepo     *repositories.CourseRepository
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(database *db.PostgresDB, attendanceRepo *repositories.AttendanceRepository, studentRepo *repositories.StudentRepository, courseRepo *repositories.CourseRepository) *AttendanceService {
	return &AttendanceService{
		db:             database,
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
	}
}

// counterDeltas maps a status to its effect on the student counters.
// LATE still counts as attended; EXCUSED touches neither counter.
func counterDeltas(status models.AttendanceStatus) (attended, missed int) {
	switch status {
	case models.AttendancePresent, models.AttendanceLate:
		return 1, 0
	case models.AttendanceAbsent:
		return 0, 1
	}
	return 0, 0
}

func (s *AttendanceService) checkEnrollment(ctx context.Context, courseID, studentID int64) error {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return err
	}
	if _, err := s.studentRepo.GetEnrollment(ctx, studentID, courseID); err != nil {
		return err
	}
	return nil
}

// Record creates one attendance record
func (s *AttendanceService) Record(ctx context.Context, req *dto.RecordAttendanceRequest, recordedBy int64) (*models.Attendance, error) {
	if !models.ValidAttendanceStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown attendance status %q", apperrors.ErrValidationFailed, req.Status)
	}
	if err := s.checkEnrollment(ctx, req.CourseID, req.StudentID); err != nil {
		return nil, err
	}

	record := &models.Attendance{
		CourseID:   req.CourseID,
		StudentID:  req.StudentID,
		Date:       helpers.DateOnlyUTC(req.Date),
		Status:     req.Status,
		Remarks:    req.Remarks,
		RecordedBy: recordedBy,
	}

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.attendanceRepo.Create(ctx, tx, record); err != nil {
			return err
		}
		attended, missed := counterDeltas(record.Status)
		if attended == 0 && missed == 0 {
			return nil
		}
		return s.studentRepo.AdjustAttendanceCounters(ctx, tx, record.StudentID, attended, missed)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// RecordBulk records a whole class for one day. Existing records for the
// same (student, date) are overwritten rather than rejected.
func (s *AttendanceService) RecordBulk(ctx context.Context, req *dto.BulkAttendanceRequest, recordedBy int64) (*dto.BulkAttendanceResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(req.Entries))
	for _, entry := range req.Entries {
		if !models.ValidAttendanceStatus(entry.Status) {
			return nil, fmt.Errorf("%w: unknown attendance status %q", apperrors.ErrValidationFailed, entry.Status)
		}
		if seen[entry.StudentID] {
			return nil, fmt.Errorf("%w: student %d appears twice", apperrors.ErrValidationFailed, entry.StudentID)
		}
		seen[entry.StudentID] = true
	}

	date := helpers.DateOnlyUTC(req.Date)
	summary := &dto.BulkAttendanceResponse{}

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, entry := range req.Entries {
			if _, err := s.studentRepo.GetEnrollment(ctx, entry.StudentID, req.CourseID); err != nil {
				return fmt.Errorf("student %d: %w", entry.StudentID, err)
			}

			existing, err := s.attendanceRepo.GetByCourseStudentDate(ctx, req.CourseID, entry.StudentID, date)
			if err != nil && !errors.Is(err, apperrors.ErrAttendanceNotFound) {
				return err
			}

			if existing == nil {
				record := &models.Attendance{
					CourseID:   req.CourseID,
					StudentID:  entry.StudentID,
					Date:       date,
					Status:     entry.Status,
					Remarks:    entry.Remarks,
					RecordedBy: recordedBy,
				}
				if err := s.attendanceRepo.Create(ctx, tx, record); err != nil {
					return err
				}
				attended, missed := counterDeltas(entry.Status)
				if attended != 0 || missed != 0 {
					if err := s.studentRepo.AdjustAttendanceCounters(ctx, tx, entry.StudentID, attended, missed); err != nil {
						return err
					}
				}
				summary.Created++
				continue
			}

			if existing.Status == entry.Status {
				continue
			}
			oldAttended, oldMissed := counterDeltas(existing.Status)
			newAttended, newMissed := counterDeltas(entry.Status)

			existing.Status = entry.Status
			existing.Remarks = entry.Remarks
			existing.RecordedBy = recordedBy
			if err := s.attendanceRepo.Update(ctx, tx, existing); err != nil {
				return err
			}
			if err := s.studentRepo.AdjustAttendanceCounters(ctx, tx, entry.StudentID, newAttended-oldAttended, newMissed-oldMissed); err != nil {
				return err
			}
			summary.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Update edits one record, reconciling the counters against the old state
func (s *AttendanceService) Update(ctx context.Context, recordID int64, req *dto.UpdateAttendanceRequest, recordedBy int64) (*models.Attendance, error) {
	if !models.ValidAttendanceStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown attendance status %q", apperrors.ErrValidationFailed, req.Status)
	}

	record, err := s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	oldAttended, oldMissed := counterDeltas(record.Status)
	newAttended, newMissed := counterDeltas(req.Status)

	record.Status = req.Status
	record.Remarks = req.Remarks
	record.RecordedBy = recordedBy
	if req.Date != nil {
		record.Date = helpers.DateOnlyUTC(*req.Date)
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.attendanceRepo.Update(ctx, tx, record); err != nil {
			return err
		}
		if da, dm := newAttended-oldAttended, newMissed-oldMissed; da != 0 || dm != 0 {
			return s.studentRepo.AdjustAttendanceCounters(ctx, tx, record.StudentID, da, dm)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a record and rolls its effect out of the counters
func (s *AttendanceService) Delete(ctx context.Context, recordID int64) error {
	record, err := s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return err
	}

	attended, missed := counterDeltas(record.Status)
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.attendanceRepo.Delete(ctx, tx, record.ID); err != nil {
			return err
		}
		if attended != 0 || missed != 0 {
			return s.studentRepo.AdjustAttendanceCounters(ctx, tx, record.StudentID, -attended, -missed)
		}
		return nil
	})
}

// GetByID retrieves one record
func (s *AttendanceService) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	return s.attendanceRepo.GetByID(ctx, id)
}

// List retrieves records filtered and paginated
func (s *AttendanceService) List(ctx context.Context, filters repositories.AttendanceFilters, offset uint64, limit int) ([]models.Attendance, int64, error) {
	return s.attendanceRepo.List(ctx, filters, offset, limit)
}

// StudentSummary returns a student's attendance standing from the
// denormalized counters. Students may only read their own summary.
func (s *AttendanceService) StudentSummary(ctx context.Context, actor authz.Actor, studentID int64) (*dto.StudentAttendanceSummary, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessStudentRecord(actor, student.UserID) {
		return nil, apperrors.ErrPermissionDenied
	}
	return &dto.StudentAttendanceSummary{
		StudentID:            student.ID,
		ClassesAttended:      student.ClassesAttended,
		ClassesMissed:        student.ClassesMissed,
		AttendancePercentage: academic.AttendancePercentage(student.ClassesAttended, student.ClassesMissed),
	}, nil
}
