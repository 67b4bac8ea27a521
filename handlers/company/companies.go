package company

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/utils/middleware"
	"github.com/sahilchouksey/campus-bridge/utils/response"
	"github.com/sahilchouksey/campus-bridge/utils/validation"
	"gorm.io/gorm"
)

// CompanyHandler handles company profile requests
type CompanyHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCompanyRequest represents the request body for creating a company profile
type CreateCompanyRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Industry     string `json:"industry" validate:"omitempty,max=100"`
	Website      string `json:"website" validate:"omitempty,url,max=255"`
	Location     string `json:"location" validate:"omitempty,max=255"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email,max=255"`
	About        string `json:"about" validate:"omitempty,max=5000"`
}

// UpdateCompanyRequest represents the request body for updating a company profile
type UpdateCompanyRequest struct {
	Name         string `json:"name" validate:"omitempty,min=2,max=255"`
	Industry     string `json:"industry" validate:"omitempty,max=100"`
	Website      string `json:"website" validate:"omitempty,url,max=255"`
	Location     string `json:"location" validate:"omitempty,max=255"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email,max=255"`
	About        string `json:"about" validate:"omitempty,max=5000"`
}

// ListCompanies handles GET /api/v1/companies
func (h *CompanyHandler) ListCompanies(c *fiber.Ctx) error {
	// Parse query parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")

	// Build query
	query := h.db.Model(&model.CompanyProfile{})

	// Apply filters
	if search != "" {
		query = query.Where("name ILIKE ? OR industry ILIKE ? OR location ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count companies")
	}

	// Calculate pagination
	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	// Get companies with pagination
	var companies []model.CompanyProfile
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch companies")
	}

	return response.Paginated(c, companies, pagination)
}

// GetCompany handles GET /api/v1/companies/:id
func (h *CompanyHandler) GetCompany(c *fiber.Ctx) error {
	id := c.Params("id")

	var company model.CompanyProfile
	if err := h.db.Preload("JobPostings").First(&company, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to fetch company")
	}

	return response.Success(c, company)
}

// CreateCompany handles POST /api/v1/companies
func (h *CompanyHandler) CreateCompany(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}
	if user.Role != model.RoleCompany && user.Role != model.RoleAdmin {
		return response.Forbidden(c, "Only company accounts can create a company profile")
	}

	// Parse request body
	var req CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// Sanitize inputs
	req.Name = validation.SanitizeString(req.Name)
	req.Industry = validation.SanitizeString(req.Industry)
	req.Location = validation.SanitizeString(req.Location)
	req.About = validation.StripHTML(req.About)

	// One profile per account
	var existing model.CompanyProfile
	if err := h.db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		return response.Conflict(c, "A company profile already exists for this account")
	}

	// Name must be unique across companies
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return response.Conflict(c, "Company with this name already exists")
	}

	company := model.CompanyProfile{
		UserID:       user.ID,
		Name:         req.Name,
		Industry:     req.Industry,
		Website:      req.Website,
		Location:     req.Location,
		ContactEmail: req.ContactEmail,
		About:        req.About,
	}

	if err := h.db.Create(&company).Error; err != nil {
		return response.InternalServerError(c, "Failed to create company")
	}

	return response.Created(c, company)
}

// UpdateCompany handles PUT /api/v1/companies/:id
func (h *CompanyHandler) UpdateCompany(c *fiber.Ctx) error {
	id := c.Params("id")

	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	// Parse request body
	var req UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// Check if company exists
	var company model.CompanyProfile
	if err := h.db.First(&company, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to fetch company")
	}

	// Only the owner or an admin may edit a profile
	if company.UserID != user.ID && user.Role != model.RoleAdmin {
		return response.Forbidden(c, "You can only update your own company profile")
	}

	// Update fields if provided
	if req.Name != "" {
		var existing model.CompanyProfile
		if err := h.db.Where("name = ? AND id != ?", req.Name, id).First(&existing).Error; err == nil {
			return response.Conflict(c, "Company with this name already exists")
		}
		company.Name = validation.SanitizeString(req.Name)
	}
	if req.Industry != "" {
		company.Industry = validation.SanitizeString(req.Industry)
	}
	if req.Website != "" {
		company.Website = req.Website
	}
	if req.Location != "" {
		company.Location = validation.SanitizeString(req.Location)
	}
	if req.ContactEmail != "" {
		company.ContactEmail = req.ContactEmail
	}
	if req.About != "" {
		company.About = validation.StripHTML(req.About)
	}

	// Save changes
	if err := h.db.Save(&company).Error; err != nil {
		return response.InternalServerError(c, "Failed to update company")
	}

	return response.SuccessWithMessage(c, "Company updated successfully", company)
}
