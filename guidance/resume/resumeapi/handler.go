package resumeapi

import (
	"io"

	"github.com/compasshq/compass/guidance/resume"
	"github.com/compasshq/compass/guidance/resume/resumesrv"
	"github.com/compasshq/compass/pkg/auth"
	"github.com/compasshq/compass/pkg/errx"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for resume uploads
type Handlers struct {
	service *resumesrv.Service
}

// NewHandlers creates a new resume handlers instance
func NewHandlers(service *resumesrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Upload stores a resume for the authenticated user
// POST /api/resume (multipart field "file")
func (h *Handlers) Upload(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return resume.ErrMissingUserID()
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return resume.ErrEmptyFile().WithDetail("form_error", err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errx.Wrap(err, "failed to open uploaded file", errx.TypeInternal)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, resume.MaxFileSize+1))
	if err != nil {
		return errx.Wrap(err, "failed to read uploaded file", errx.TypeInternal)
	}

	resp, err := h.service.Upload(c.Context(), resume.UploadRequest{
		UserID:      userID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RegisterRoutes wires resume routes behind the auth middleware
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	group := app.Group("/api/resume", authMiddleware.Handle)
	group.Post("/", handlers.Upload)
}
