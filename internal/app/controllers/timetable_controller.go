package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
)

// TimetableController handles weekly timetable slots
type TimetableController struct {
	timetableService *services.TimetableService
}

// NewTimetableController creates a new TimetableController
func NewTimetableController(timetableService *services.TimetableService) *TimetableController {
	return &TimetableController{timetableService: timetableService}
}

func timetableSlotResponse(slot *models.TimetableSlot) dto.TimetableSlotResponse {
	resp := dto.TimetableSlotResponse{
		ID:            slot.ID,
		CourseID:      slot.CourseID,
		FacultyUserID: slot.FacultyUserID,
		DayOfWeek:     string(slot.DayOfWeek),
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		Room:          slot.Room,
		Semester:      string(slot.Semester),
		AcademicYear:  slot.AcademicYear,
	}
	if slot.Course != nil {
		resp.CourseCode = slot.Course.Code
		resp.CourseName = slot.Course.Name
	}
	return resp
}

func timetableListResponse(slots []models.TimetableSlot) dto.TimetableListResponse {
	responses := make([]dto.TimetableSlotResponse, 0, len(slots))
	for i := range slots {
		responses = append(responses, timetableSlotResponse(&slots[i]))
	}
	return dto.TimetableListResponse{Slots: responses}
}

// CreateSlot adds a slot to the weekly timetable
// @Summary Create a timetable slot
// @Description Rejected with conflict details when the room or the faculty member is already booked for an overlapping time
// @Tags timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTimetableSlotRequest true "Slot data"
// @Success 201 {object} dto.StructuredResponse{data=dto.TimetableSlotResponse} "Slot created"
// @Failure 400 {object} dto.ErrorResponse "Invalid time range or schedule conflict"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /timetable [post]
func (c *TimetableController) CreateSlot(ctx *gin.Context) {
	var req dto.CreateTimetableSlotRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	slot, err := c.timetableService.CreateSlot(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(timetableSlotResponse(slot), "Slot created"))
}

// ListSlots retrieves timetable slots with filters
// @Summary List timetable slots
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Filter by course"
// @Param facultyUserId query int false "Filter by faculty user"
// @Param dayOfWeek query string false "Filter by day" Enums(MONDAY, TUESDAY, WEDNESDAY, THURSDAY, FRIDAY, SATURDAY, SUNDAY)
// @Param semester query string false "Filter by term" Enums(FALL, SPRING, SUMMER)
// @Param academicYear query int false "Filter by academic year"
// @Param room query string false "Filter by room"
// @Success 200 {object} dto.StructuredResponse{data=dto.TimetableListResponse} "Slots"
// @Router /timetable [get]
func (c *TimetableController) ListSlots(ctx *gin.Context) {
	var filters repositories.TimetableFilters
	if v := ctx.Query("courseId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CourseID = &id
		}
	}
	if v := ctx.Query("facultyUserId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.FacultyUserID = &id
		}
	}
	if v := ctx.Query("dayOfWeek"); v != "" {
		day := models.DayOfWeek(v)
		filters.DayOfWeek = &day
	}
	if v := ctx.Query("semester"); v != "" {
		semester := models.Semester(v)
		filters.Semester = &semester
	}
	if v := ctx.Query("academicYear"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filters.AcademicYear = &year
		}
	}
	filters.Room = ctx.Query("room")

	slots, err := c.timetableService.ListSlots(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(timetableListResponse(slots), "Slots retrieved"))
}

// GetSlot retrieves one slot
// @Summary Get timetable slot by ID
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.TimetableSlotResponse} "Slot"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Router /timetable/{id} [get]
func (c *TimetableController) GetSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	slot, err := c.timetableService.GetSlotByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(timetableSlotResponse(slot), "Slot retrieved"))
}

// UpdateSlot moves or rebooks a slot
// @Summary Update a timetable slot
// @Description The same conflict checks as creation apply, excluding the slot itself
// @Tags timetable
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Param request body dto.UpdateTimetableSlotRequest true "Slot data"
// @Success 200 {object} dto.StructuredResponse{data=dto.TimetableSlotResponse} "Slot updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid time range or schedule conflict"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Router /timetable/{id} [put]
func (c *TimetableController) UpdateSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTimetableSlotRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	slot, err := c.timetableService.UpdateSlot(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(timetableSlotResponse(slot), "Slot updated"))
}

// DeleteSlot removes a slot
// @Summary Delete a timetable slot
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 200 {object} dto.StructuredResponse "Slot deleted"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Router /timetable/{id} [delete]
func (c *TimetableController) DeleteSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.timetableService.DeleteSlot(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Slot deleted"))
}

// StudentTimetable retrieves a student's weekly timetable
// @Summary Get a student's timetable
// @Description Slots of the courses the student is actively enrolled in for the given term
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student record ID"
// @Param semester query string true "Term" Enums(FALL, SPRING, SUMMER)
// @Param academicYear query int true "Academic year"
// @Success 200 {object} dto.StructuredResponse{data=dto.TimetableListResponse} "Slots"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/timetable [get]
func (c *TimetableController) StudentTimetable(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	semester := models.Semester(ctx.Query("semester"))
	year, err := strconv.Atoi(ctx.Query("academicYear"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "academicYear must be a number")))
		return
	}

	slots, err := c.timetableService.StudentTimetable(ctx.Request.Context(), actor, id, semester, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(timetableListResponse(slots), "Slots retrieved"))
}

// FacultyTimetable retrieves a faculty member's teaching schedule
// @Summary Get a faculty member's timetable
// @Tags timetable
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Faculty user ID"
// @Param semester query string false "Term" Enums(FALL, SPRING, SUMMER)
// @Param academicYear query int false "Academic year"
// @Success 200 {object} dto.StructuredResponse{data=dto.TimetableListResponse} "Slots"
// @Router /faculty-users/{userId}/timetable [get]
func (c *TimetableController) FacultyTimetable(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	var semester *models.Semester
	if v := ctx.Query("semester"); v != "" {
		s := models.Semester(v)
		semester = &s
	}
	var academicYear *int
	if v := ctx.Query("academicYear"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			academicYear = &year
		}
	}

	slots, err := c.timetableService.FacultyTimetable(ctx.Request.Context(), userID, semester, academicYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(timetableListResponse(slots), "Slots retrieved"))
}
