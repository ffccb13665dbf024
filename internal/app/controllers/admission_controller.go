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
	"github.com/campushub/campushub/internal/pkg/helpers"
)

// AdmissionController handles admission applications and their documents
type AdmissionController struct {
	admissionService *services.AdmissionService
}

// NewAdmissionController creates a new AdmissionController
func NewAdmissionController(admissionService *services.AdmissionService) *AdmissionController {
	return &AdmissionController{admissionService: admissionService}
}

func admissionDocumentResponse(doc *models.AdmissionDocument) dto.AdmissionDocumentResponse {
	return dto.AdmissionDocumentResponse{
		ID:         doc.ID,
		DocType:    doc.DocType,
		FileName:   doc.FileName,
		FilePath:   doc.FilePath,
		FileSize:   doc.FileSize,
		MimeType:   doc.MimeType,
		IsVerified: doc.IsVerified,
		VerifiedBy: doc.VerifiedBy,
		UploadedAt: doc.UploadedAt,
	}
}

func admissionResponse(admission *models.Admission) dto.AdmissionResponse {
	resp := dto.AdmissionResponse{
		ID:                admission.ID,
		ApplicationNumber: admission.ApplicationNumber,
		ProgramID:         admission.ProgramID,
		FirstName:         admission.FirstName,
		LastName:          admission.LastName,
		Email:             admission.Email,
		Phone:             admission.Phone,
		DateOfBirth:       admission.DateOfBirth,
		Address:           admission.Address,
		PreviousSchool:    admission.PreviousSchool,
		PreviousGPA:       admission.PreviousGPA,
		Status:            string(admission.Status),
		Remarks:           admission.Remarks,
		AppliedAt:         admission.AppliedAt,
	}
	if admission.Program != nil {
		resp.ProgramName = admission.Program.Name
	}
	for i := range admission.Documents {
		resp.Documents = append(resp.Documents, admissionDocumentResponse(&admission.Documents[i]))
	}
	for _, event := range admission.StatusHistory {
		resp.StatusHistory = append(resp.StatusHistory, dto.AdmissionStatusEventResponse{
			Status:    string(event.Status),
			Remarks:   event.Remarks,
			ChangedBy: event.ChangedBy,
			ChangedAt: event.ChangedAt,
		})
	}
	return resp
}

// Apply submits a new admission application. Public, no authentication.
// @Summary Submit an admission application
// @Description Issues an application number the applicant can later use to check their status
// @Tags admissions
// @Accept json
// @Produce json
// @Param request body dto.CreateAdmissionRequest true "Application data"
// @Success 201 {object} dto.StructuredResponse{data=dto.AdmissionResponse} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid application data"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /admissions/apply [post]
func (c *AdmissionController) Apply(ctx *gin.Context) {
	var req dto.CreateAdmissionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	admission, err := c.admissionService.Apply(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(admissionResponse(admission), "Application submitted"))
}

// CheckStatus retrieves an application by its application number. Public.
// @Summary Check application status
// @Tags admissions
// @Produce json
// @Param number path string true "Application number"
// @Success 200 {object} dto.StructuredResponse{data=dto.AdmissionResponse} "Application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admission-status/{number} [get]
func (c *AdmissionController) CheckStatus(ctx *gin.Context) {
	number := ctx.Param("number")

	admission, err := c.admissionService.GetByApplicationNumber(ctx.Request.Context(), number)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(admissionResponse(admission), "Application retrieved"))
}

// ListAdmissions retrieves applications with filters
// @Summary List admission applications
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Filter by program"
// @Param status query string false "Filter by status" Enums(PENDING, UNDER_REVIEW, APPROVED, REJECTED, WAITLISTED)
// @Param search query string false "Search in application number, name and email"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.AdmissionListResponse} "Applications"
// @Router /admissions [get]
func (c *AdmissionController) ListAdmissions(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var filters repositories.AdmissionFilters
	if v := ctx.Query("programId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.ProgramID = &id
		}
	}
	if v := ctx.Query("status"); v != "" {
		status := models.AdmissionStatus(v)
		filters.Status = &status
	}
	filters.Search = ctx.Query("search")

	admissions, total, err := c.admissionService.List(ctx.Request.Context(), filters, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AdmissionResponse, 0, len(admissions))
	for i := range admissions {
		responses = append(responses, admissionResponse(&admissions[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.AdmissionListResponse{
		Admissions: responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Applications retrieved"))
}

// GetAdmission retrieves one application with documents and history
// @Summary Get admission application by ID
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.AdmissionResponse} "Application"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admissions/{id} [get]
func (c *AdmissionController) GetAdmission(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	admission, err := c.admissionService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(admissionResponse(admission), "Application retrieved"))
}

// UpdateStatus moves an application to a new status
// @Summary Update an application's status
// @Description Appends a status history entry; terminal statuses cannot be changed again
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateAdmissionStatusRequest true "New status"
// @Success 200 {object} dto.StructuredResponse{data=dto.AdmissionResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admissions/{id}/status [put]
func (c *AdmissionController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAdmissionStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	admission, err := c.admissionService.UpdateStatus(ctx.Request.Context(), id, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(admissionResponse(admission), "Status updated"))
}

// UploadDocument attaches a file to an application
// @Summary Upload an admission document
// @Tags admissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param docType formData string true "Document type, e.g. TRANSCRIPT or ID_PROOF"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.StructuredResponse{data=dto.AdmissionDocumentResponse} "Document uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or document type"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admissions/{id}/documents [post]
func (c *AdmissionController) UploadDocument(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	docType := ctx.PostForm("docType")
	if docType == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "docType is required")))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file upload is required")))
		return
	}

	doc, err := c.admissionService.UploadDocument(ctx.Request.Context(), id, docType, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(admissionDocumentResponse(doc), "Document uploaded"))
}

// VerifyDocument marks an uploaded document as verified
// @Summary Verify an admission document
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param docId path int true "Document ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.AdmissionDocumentResponse} "Document verified"
// @Failure 404 {object} dto.ErrorResponse "Document not found for this application"
// @Router /admissions/{id}/documents/{docId}/verify [put]
func (c *AdmissionController) VerifyDocument(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	docID, ok := parseIDParam(ctx, "docId")
	if !ok {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	doc, err := c.admissionService.VerifyDocument(ctx.Request.Context(), id, docID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(admissionDocumentResponse(doc), "Document verified"))
}

// DeleteDocument removes an uploaded document
// @Summary Delete an admission document
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param docId path int true "Document ID"
// @Success 200 {object} dto.StructuredResponse "Document deleted"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /admissions/{id}/documents/{docId} [delete]
func (c *AdmissionController) DeleteDocument(ctx *gin.Context) {
	if _, ok := parseIDParam(ctx, "id"); !ok {
		return
	}
	docID, ok := parseIDParam(ctx, "docId")
	if !ok {
		return
	}

	if err := c.admissionService.DeleteDocument(ctx.Request.Context(), docID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Document deleted"))
}
