package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/xuri/excelize/v2"
)

// ExportFormat selects the output file type
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// exportBatchSize bounds each page pulled from the store while exporting
const exportBatchSize = 500

// ExportService renders administrative data sets as downloadable files.
// Content is returned as a buffer; the handler sets the response headers.
type ExportService struct {
	studentRepo    *repositories.StudentRepository
	facultyRepo    *repositories.FacultyRepository
	courseRepo     *repositories.CourseRepository
	attendanceRepo *repositories.AttendanceRepository
}

// NewExportService creates a new ExportService
func NewExportService(
	studentRepo *repositories.StudentRepository,
	facultyRepo *repositories.FacultyRepository,
	courseRepo *repositories.CourseRepository,
	attendanceRepo *repositories.AttendanceRepository,
) *ExportService {
	return &ExportService{
		studentRepo:    studentRepo,
		facultyRepo:    facultyRepo,
		courseRepo:     courseRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Export renders the named resource in the requested format and returns
// the file content together with a suggested filename.
func (s *ExportService) Export(ctx context.Context, resource string, format ExportFormat) (*bytes.Buffer, string, error) {
	if format != FormatCSV && format != FormatXLSX {
		return nil, "", fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidationFailed, format)
	}

	var (
		header []string
		rows   [][]string
		err    error
	)
	switch resource {
	case "students":
		header, rows, err = s.studentRows(ctx)
	case "faculty":
		header, rows, err = s.facultyRows(ctx)
	case "courses":
		header, rows, err = s.courseRows(ctx)
	case "attendance":
		header, rows, err = s.attendanceRows(ctx)
	default:
		return nil, "", fmt.Errorf("%w: unknown export resource %q", apperrors.ErrValidationFailed, resource)
	}
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.%s", resource, time.Now().Format("20060102"), format)

	var buf *bytes.Buffer
	if format == FormatCSV {
		buf, err = renderCSV(header, rows)
	} else {
		buf, err = renderXLSX(header, rows)
	}
	if err != nil {
		return nil, "", err
	}
	return buf, filename, nil
}

func (s *ExportService) studentRows(ctx context.Context) ([]string, [][]string, error) {
	header := []string{"Student ID", "First Name", "Last Name", "Email", "Enrollment Year", "Semester", "Status", "Attended", "Missed", "CGPA"}

	var rows [][]string
	var offset uint64
	for {
		students, _, err := s.studentRepo.List(ctx, repositories.StudentFilters{}, offset, exportBatchSize)
		if err != nil {
			return nil, nil, err
		}
		for _, st := range students {
			var firstName, lastName, email string
			if st.User != nil {
				firstName, lastName, email = st.User.FirstName, st.User.LastName, st.User.Email
			}
			rows = append(rows, []string{
				st.StudentID, firstName, lastName, email,
				strconv.Itoa(st.EnrollmentYear), strconv.Itoa(st.CurrentSemester),
				string(st.Status),
				strconv.Itoa(st.ClassesAttended), strconv.Itoa(st.ClassesMissed),
				strconv.FormatFloat(st.CGPA, 'f', 2, 64),
			})
		}
		if len(students) < exportBatchSize {
			return header, rows, nil
		}
		offset += exportBatchSize
	}
}

func (s *ExportService) facultyRows(ctx context.Context) ([]string, [][]string, error) {
	header := []string{"Faculty ID", "First Name", "Last Name", "Email", "Designation", "Qualification", "Joining Date"}

	var rows [][]string
	var offset uint64
	for {
		profiles, _, err := s.facultyRepo.List(ctx, nil, "", offset, exportBatchSize)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range profiles {
			var firstName, lastName, email string
			if p.User != nil {
				firstName, lastName, email = p.User.FirstName, p.User.LastName, p.User.Email
			}
			qualification := ""
			if p.Qualification != nil {
				qualification = *p.Qualification
			}
			rows = append(rows, []string{
				p.FacultyID, firstName, lastName, email,
				p.Designation, qualification,
				p.JoiningDate.Format("2006-01-02"),
			})
		}
		if len(profiles) < exportBatchSize {
			return header, rows, nil
		}
		offset += exportBatchSize
	}
}

func (s *ExportService) courseRows(ctx context.Context) ([]string, [][]string, error) {
	header := []string{"Code", "Name", "Credits", "Semester", "Capacity", "Enrolled", "Active"}

	var rows [][]string
	var offset uint64
	for {
		courses, _, err := s.courseRepo.List(ctx, repositories.CourseFilters{}, offset, exportBatchSize)
		if err != nil {
			return nil, nil, err
		}
		for _, c := range courses {
			rows = append(rows, []string{
				c.Code, c.Name,
				strconv.Itoa(c.Credits), strconv.Itoa(c.Semester),
				strconv.Itoa(c.Capacity), strconv.Itoa(c.EnrolledCount),
				strconv.FormatBool(c.IsActive),
			})
		}
		if len(courses) < exportBatchSize {
			return header, rows, nil
		}
		offset += exportBatchSize
	}
}

func (s *ExportService) attendanceRows(ctx context.Context) ([]string, [][]string, error) {
	header := []string{"Course ID", "Student ID", "Date", "Status", "Remarks"}

	var rows [][]string
	var offset uint64
	for {
		records, _, err := s.attendanceRepo.List(ctx, repositories.AttendanceFilters{}, offset, exportBatchSize)
		if err != nil {
			return nil, nil, err
		}
		for _, rec := range records {
			remarks := ""
			if rec.Remarks != nil {
				remarks = *rec.Remarks
			}
			rows = append(rows, []string{
				strconv.FormatInt(rec.CourseID, 10),
				strconv.FormatInt(rec.StudentID, 10),
				rec.Date.Format("2006-01-02"),
				string(rec.Status),
				remarks,
			})
		}
		if len(records) < exportBatchSize {
			return header, rows, nil
		}
		offset += exportBatchSize
	}
}

func renderCSV(header []string, rows [][]string) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return &buf, nil
}

func renderXLSX(header []string, rows [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheetRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for i, row := range rows {
		if err := writeSheetRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to locate row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
