package media

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/dealerhub/dealership-service/pkg/util"
)

const (
	imagesField      = "images"
	uploadedFilesKey = "uploaded_files"
	uploadedURLsKey  = "uploaded_image_urls"
)

// UploadMiddleware parses multipart batches and forwards accepted files to
// the image host before handler logic runs.
type UploadMiddleware struct {
	uploader Uploader
	logger   *zap.Logger
}

// NewUploadMiddleware constructs middleware.
func NewUploadMiddleware(uploader Uploader, logger *zap.Logger) *UploadMiddleware {
	return &UploadMiddleware{uploader: uploader, logger: logger}
}

// Handle filters and forwards the uploaded batch. Any violation fails the
// whole batch with 400 before the handler runs. Non-multipart requests pass
// through with no images.
func (m *UploadMiddleware) Handle(c *fiber.Ctx) error {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return c.Next()
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("File upload error")
	}

	for field := range form.File {
		if field != imagesField {
			return apperrors.NewValidationError("Unexpected file field")
		}
	}

	files := form.File[imagesField]
	if len(files) > MaxFilesPerRequest {
		return apperrors.NewValidationError("Too many files. Maximum 10 images allowed")
	}

	// storage filter: reject the whole batch before forwarding anything
	for _, file := range files {
		if err := ValidateFile(file); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		result, err := m.uploader.Upload(c.Context(), file)
		if err != nil {
			m.logger.Error("image upload failed", zap.String("file", file.Filename), zap.Error(err))
			return apperrors.NewValidationError("File upload failed")
		}
		urls = append(urls, result.SecureURL)
	}

	c.Locals(uploadedFilesKey, files)
	c.Locals(uploadedURLsKey, urls)
	return c.Next()
}

// RequireImages is the dedicated validation step: at least one accepted
// file, each re-checked against the type and size limits.
func (m *UploadMiddleware) RequireImages(c *fiber.Ctx) error {
	files := uploadedFiles(c)
	if len(files) == 0 {
		return apperrors.NewValidationError("At least one image is required")
	}
	for _, file := range files {
		if err := ValidateFile(file); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	}
	return c.Next()
}

// UploadedImageURLs returns the stable URLs produced for this request, in
// upload order.
func UploadedImageURLs(c *fiber.Ctx) []string {
	if urls, ok := c.Locals(uploadedURLsKey).([]string); ok {
		return urls
	}
	return nil
}

func uploadedFiles(c *fiber.Ctx) []*multipart.FileHeader {
	if files, ok := c.Locals(uploadedFilesKey).([]*multipart.FileHeader); ok {
		return files
	}
	return nil
}
