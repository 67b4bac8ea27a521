package university

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/utils/middleware"
	"github.com/sahilchouksey/campus-bridge/utils/response"
	"github.com/sahilchouksey/campus-bridge/utils/validation"
	"gorm.io/gorm"
)

// UniversityHandler handles university profile requests
type UniversityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(db *gorm.DB) *UniversityHandler {
	return &UniversityHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateUniversityRequest represents the request body for creating a university profile
type CreateUniversityRequest struct {
	Name         string `json:"name" validate:"required,min=3,max=255"`
	Code         string `json:"code" validate:"required,min=2,max=50"`
	Location     string `json:"location" validate:"omitempty,max=255"`
	Website      string `json:"website" validate:"omitempty,url,max=255"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email,max=255"`
	About        string `json:"about" validate:"omitempty,max=5000"`
}

// UpdateUniversityRequest represents the request body for updating a university profile
type UpdateUniversityRequest struct {
	Name         string `json:"name" validate:"omitempty,min=3,max=255"`
	Code         string `json:"code" validate:"omitempty,min=2,max=50"`
	Location     string `json:"location" validate:"omitempty,max=255"`
	Website      string `json:"website" validate:"omitempty,url,max=255"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email,max=255"`
	About        string `json:"about" validate:"omitempty,max=5000"`
}

// ListUniversities handles GET /api/v1/universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	// Parse query parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")

	// Build query
	query := h.db.Model(&model.UniversityProfile{})

	// Apply filters
	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ? OR location ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count universities")
	}

	// Calculate pagination
	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	// Get universities with pagination
	var universities []model.UniversityProfile
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&universities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch universities")
	}

	return response.Paginated(c, universities, pagination)
}

// GetUniversity handles GET /api/v1/universities/:id
func (h *UniversityHandler) GetUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.UniversityProfile
	if err := h.db.First(&university, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	return response.Success(c, university)
}

// CreateUniversity handles POST /api/v1/universities
func (h *UniversityHandler) CreateUniversity(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}
	if user.Role != model.RoleUniversity && user.Role != model.RoleAdmin {
		return response.Forbidden(c, "Only university accounts can create a university profile")
	}

	// Parse request body
	var req CreateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// Sanitize inputs
	req.Name = validation.SanitizeString(req.Name)
	req.Code = strings.ToUpper(validation.SanitizeString(req.Code))
	req.Location = validation.SanitizeString(req.Location)
	req.About = validation.StripHTML(req.About)

	// One profile per account
	var existing model.UniversityProfile
	if err := h.db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		return response.Conflict(c, "A university profile already exists for this account")
	}

	// Check if university with same code already exists
	if err := h.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return response.Conflict(c, "University with this code already exists")
	}

	university := model.UniversityProfile{
		UserID:       user.ID,
		Name:         req.Name,
		Code:         req.Code,
		Location:     req.Location,
		Website:      req.Website,
		ContactEmail: req.ContactEmail,
		About:        req.About,
	}

	if err := h.db.Create(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to create university")
	}

	return response.Created(c, university)
}

// UpdateUniversity handles PUT /api/v1/universities/:id
func (h *UniversityHandler) UpdateUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	// Parse request body
	var req UpdateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// Check if university exists
	var university model.UniversityProfile
	if err := h.db.First(&university, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	// Only the owner or an admin may edit a profile
	if university.UserID != user.ID && user.Role != model.RoleAdmin {
		return response.Forbidden(c, "You can only update your own university profile")
	}

	// Update fields if provided
	if req.Name != "" {
		var existing model.UniversityProfile
		if err := h.db.Where("name = ? AND id != ?", req.Name, id).First(&existing).Error; err == nil {
			return response.Conflict(c, "University with this name already exists")
		}
		university.Name = validation.SanitizeString(req.Name)
	}
	if req.Code != "" {
		code := strings.ToUpper(validation.SanitizeString(req.Code))
		// Check if code is already used by another university
		var existing model.UniversityProfile
		if err := h.db.Where("code = ? AND id != ?", code, id).First(&existing).Error; err == nil {
			return response.Conflict(c, "University with this code already exists")
		}
		university.Code = code
	}
	if req.Location != "" {
		university.Location = validation.SanitizeString(req.Location)
	}
	if req.Website != "" {
		university.Website = req.Website
	}
	if req.ContactEmail != "" {
		university.ContactEmail = req.ContactEmail
	}
	if req.About != "" {
		university.About = validation.StripHTML(req.About)
	}

	// Save changes
	if err := h.db.Save(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to update university")
	}

	return response.SuccessWithMessage(c, "University updated successfully", university)
}
