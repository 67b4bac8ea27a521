package job

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/utils/middleware"
	"github.com/sahilchouksey/campus-bridge/utils/response"
	"github.com/sahilchouksey/campus-bridge/utils/validation"
	"gorm.io/gorm"
)

// JobHandler handles job posting requests
type JobHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewJobHandler creates a new job handler
func NewJobHandler(db *gorm.DB) *JobHandler {
	return &JobHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateJobRequest represents the request body for creating a job posting
type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	Location    string `json:"location" validate:"omitempty,max=255"`
	SalaryRange string `json:"salary_range" validate:"omitempty,max=100"`
}

// UpdateJobRequest represents the request body for updating a job posting
type UpdateJobRequest struct {
	Title       string `json:"title" validate:"omitempty,min=3,max=255"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	Location    string `json:"location" validate:"omitempty,max=255"`
	SalaryRange string `json:"salary_range" validate:"omitempty,max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=open closed"`
}

// ListJobs handles GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	// Parse query parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")
	status := c.Query("status", "")
	companyID := c.Query("company_id", "")

	// Build query
	query := h.db.Model(&model.JobPosting{})

	// Apply filters
	if search != "" {
		query = query.Where("title ILIKE ? OR location ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	if status == string(model.JobStatusOpen) || status == string(model.JobStatusClosed) {
		query = query.Where("status = ?", status)
	}
	if companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count jobs")
	}

	// Calculate pagination
	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	// Get jobs with pagination
	var jobs []model.JobPosting
	if err := query.Preload("Company").Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch jobs")
	}

	return response.Paginated(c, jobs, pagination)
}

// GetJob handles GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	id := c.Params("id")

	var jobPosting model.JobPosting
	if err := h.db.Preload("Company").First(&jobPosting, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to fetch job")
	}

	return response.Success(c, jobPosting)
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	// Only companies post jobs
	var company model.CompanyProfile
	if err := h.db.Where("user_id = ?", user.ID).First(&company).Error; err != nil {
		return response.Forbidden(c, "A company profile is required to post jobs")
	}

	// Parse request body
	var req CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	jobPosting := model.JobPosting{
		CompanyID:   company.ID,
		Title:       validation.SanitizeString(req.Title),
		Description: validation.StripHTML(req.Description),
		Location:    validation.SanitizeString(req.Location),
		SalaryRange: validation.SanitizeString(req.SalaryRange),
		Status:      model.JobStatusOpen,
	}

	if err := h.db.Create(&jobPosting).Error; err != nil {
		return response.InternalServerError(c, "Failed to create job")
	}

	return response.Created(c, jobPosting)
}

// UpdateJob handles PUT /api/v1/jobs/:id
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	id := c.Params("id")

	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	// Parse request body
	var req UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// Check if job exists
	var jobPosting model.JobPosting
	if err := h.db.Preload("Company").First(&jobPosting, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to fetch job")
	}

	// Only the posting company or an admin may edit
	if jobPosting.Company.UserID != user.ID && user.Role != model.RoleAdmin {
		return response.Forbidden(c, "You can only update your own job postings")
	}

	// Update fields if provided
	if req.Title != "" {
		jobPosting.Title = validation.SanitizeString(req.Title)
	}
	if req.Description != "" {
		jobPosting.Description = validation.StripHTML(req.Description)
	}
	if req.Location != "" {
		jobPosting.Location = validation.SanitizeString(req.Location)
	}
	if req.SalaryRange != "" {
		jobPosting.SalaryRange = validation.SanitizeString(req.SalaryRange)
	}
	if req.Status != "" {
		jobPosting.Status = model.JobStatus(req.Status)
	}

	// Save changes
	if err := h.db.Save(&jobPosting).Error; err != nil {
		return response.InternalServerError(c, "Failed to update job")
	}

	return response.SuccessWithMessage(c, "Job updated successfully", jobPosting)
}

// DeleteJob handles DELETE /api/v1/jobs/:id
func (h *JobHandler) DeleteJob(c *fiber.Ctx) error {
	id := c.Params("id")

	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	var jobPosting model.JobPosting
	if err := h.db.Preload("Company").First(&jobPosting, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to fetch job")
	}

	if jobPosting.Company.UserID != user.ID && user.Role != model.RoleAdmin {
		return response.Forbidden(c, "You can only delete your own job postings")
	}

	if err := h.db.Delete(&jobPosting).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete job")
	}

	return response.SuccessWithMessage(c, "Job deleted successfully", nil)
}
