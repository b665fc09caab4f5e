package items

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xyz-asif/trackback/internal/middleware"
	"github.com/xyz-asif/trackback/internal/models"
	"github.com/xyz-asif/trackback/internal/pkg/cloudinary"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
	"github.com/xyz-asif/trackback/internal/pkg/response"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

// ImageUploader hosts report photos. *cloudinary.Service satisfies it.
type ImageUploader interface {
	UploadImage(ctx context.Context, r io.Reader, publicID string) (*cloudinary.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

type Handler struct {
	repo     Repository
	uploader ImageUploader
	log      *logger.Logger
	now      func() time.Time
}

// NewHandler wires the items endpoints. uploader may be nil, in which case
// photos are stored inline as data URLs.
func NewHandler(repo Repository, uploader ImageUploader, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		repo:     repo,
		uploader: uploader,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Report godoc
// @Summary Report a lost or found item
// @Description Store a report for the authenticated user. A data-URL photo is moved to image hosting when configured.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReportRequest true "Report"
// @Success 201 {object} response.SuccessResponse{data=models.Item}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /items/report [post]
func (h *Handler) Report(c *gin.Context) {
	reporter, ok := middleware.Username(c)
	if !ok {
		response.FromError(c, apperrors.ErrNotAuthenticated)
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	kind, err := ValidateReport(&req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if req.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			response.InternalServerError(c, "Failed to generate id", "ID_FAILED")
			return
		}
		req.ID = id.String()
	}

	item := &models.Item{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Contact:     req.Contact,
		Reporter:    reporter,
		CreatedAt:   h.now(),
		Kind:        kind,
	}

	ctx := c.Request.Context()
	uploaded := ""
	if req.ImageData != "" {
		img, err := cloudinary.DecodeDataURL(req.ImageData)
		if err != nil {
			response.ValidationFailed(c, err.Error())
			return
		}

		if h.uploader == nil {
			item.ImageData = req.ImageData
		} else {
			res, err := h.uploader.UploadImage(ctx, img.Reader(), item.ID)
			if err != nil {
				h.log.Error("upload photo for %s: %v", item.ID, err)
				response.InternalServerError(c, "Failed to upload image", "UPLOAD_FAILED")
				return
			}
			item.ImageURL = res.URL
			uploaded = res.PublicID
		}
	}

	if err := h.repo.Insert(ctx, item); err != nil {
		if uploaded != "" {
			if derr := h.uploader.Delete(context.WithoutCancel(ctx), uploaded); derr != nil {
				h.log.Warn("remove orphaned photo %s: %v", uploaded, derr)
			}
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.Conflict(c, "item id already exists", "DUPLICATE")
			return
		}
		h.log.Error("insert item %s: %v", item.ID, err)
		response.DatabaseError(c, "Failed to store report")
		return
	}

	h.log.Info("%s item %q reported by %s", item.Kind, item.Name, reporter)
	response.Created(c, item)
}

// All godoc
// @Summary List all reports
// @Description Every stored report in insertion order
// @Tags items
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=[]models.Item}
// @Router /items/all [get]
func (h *Handler) All(c *gin.Context) {
	list, err := h.repo.All(c.Request.Context())
	if err != nil {
		h.log.Error("list items: %v", err)
		response.DatabaseError(c, "Failed to list items")
		return
	}
	response.Success(c, list)
}

// Search godoc
// @Summary Search reports
// @Description Case-insensitive substring match on name and optional location
// @Tags items
// @Produce json
// @Param q query string false "Name contains"
// @Param location query string false "Location contains"
// @Success 200 {object} response.SuccessResponse{data=[]models.Item}
// @Router /items/search [get]
func (h *Handler) Search(c *gin.Context) {
	list, err := h.repo.Search(c.Request.Context(), c.Query("q"), c.Query("location"))
	if err != nil {
		h.log.Error("search items: %v", err)
		response.DatabaseError(c, "Failed to search items")
		return
	}
	response.Success(c, list)
}

// History godoc
// @Summary Reports by user
// @Description Every report submitted by username, in insertion order
// @Tags items
// @Produce json
// @Param username path string true "Reporter"
// @Success 200 {object} response.SuccessResponse{data=[]models.Item}
// @Router /items/history/{username} [get]
func (h *Handler) History(c *gin.Context) {
	list, err := h.repo.ByReporter(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.log.Error("history for %s: %v", c.Param("username"), err)
		response.DatabaseError(c, "Failed to load history")
		return
	}
	response.Success(c, list)
}
