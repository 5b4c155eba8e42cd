package app

import (
	"net/http"

	"revhub/internal/apperr"
	"revhub/internal/middleware"
	"revhub/internal/model"
	"revhub/internal/repository"
	"revhub/internal/util"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the phone/company catalog the review flows hang
// off. Writes are limited to the company logo, admin-only.
type CatalogHandler struct {
	catalogRepo repository.CatalogRepository
	cloudinary  *util.CloudinaryClient
}

func NewCatalogHandler(catalogRepo repository.CatalogRepository, cloudinary *util.CloudinaryClient) *CatalogHandler {
	return &CatalogHandler{catalogRepo: catalogRepo, cloudinary: cloudinary}
}

// ListPhones handles GET /api/v1/phones
func (h *CatalogHandler) ListPhones(c *gin.Context) {
	limit, offset := pagination(c)

	phones, err := h.catalogRepo.ListPhones(limit, offset)
	if err != nil {
		util.Error(c, apperr.Internal("phone list", err))
		return
	}

	util.SuccessResponse(c, http.StatusOK, "phones retrieved", gin.H{"phones": phones})
}

// GetPhone handles GET /api/v1/phones/:id
func (h *CatalogHandler) GetPhone(c *gin.Context) {
	phone, err := h.catalogRepo.FindPhone(c.Param("id"))
	if err != nil {
		util.Error(c, apperr.Internal("phone lookup", err))
		return
	}
	if phone == nil {
		util.Error(c, apperr.ErrTargetNotFound)
		return
	}

	// Opening a phone page counts as a view; best-effort.
	_ = h.catalogRepo.IncrementPhoneViews(phone.ID)

	util.SuccessResponse(c, http.StatusOK, "phone retrieved", gin.H{"phone": phone})
}

// GetCompany handles GET /api/v1/companies/:id
func (h *CatalogHandler) GetCompany(c *gin.Context) {
	company, err := h.catalogRepo.FindCompany(c.Param("id"))
	if err != nil {
		util.Error(c, apperr.Internal("company lookup", err))
		return
	}
	if company == nil {
		util.Error(c, apperr.ErrTargetNotFound)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "company retrieved", gin.H{"company": company})
}

// UploadCompanyLogo handles PUT /api/v1/companies/:id/logo (admin only)
func (h *CatalogHandler) UploadCompanyLogo(c *gin.Context) {
	role, _ := c.Get(middleware.UserRoleKey)
	if role != model.RoleAdmin {
		util.Error(c, apperr.ErrForbidden)
		return
	}

	if h.cloudinary == nil {
		util.Error(c, apperr.New(apperr.KindInternal, "UPLOADS_DISABLED", "image uploads are not configured"))
		return
	}

	company, err := h.catalogRepo.FindCompany(c.Param("id"))
	if err != nil {
		util.Error(c, apperr.Internal("company lookup", err))
		return
	}
	if company == nil {
		util.Error(c, apperr.ErrTargetNotFound)
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		util.BadRequest(c, "logo file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.Error(c, apperr.Internal("logo open", err))
		return
	}
	defer file.Close()

	url, err := h.cloudinary.UploadFromReader(file, fileHeader.Filename)
	if err != nil {
		util.Error(c, apperr.Internal("logo upload", err))
		return
	}

	if err := h.catalogRepo.UpdateCompanyLogo(company.ID, url); err != nil {
		util.Error(c, apperr.Internal("logo persist", err))
		return
	}

	util.SuccessResponse(c, http.StatusOK, "company logo updated", gin.H{"logo": url})
}
