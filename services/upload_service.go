package services

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageSizeBytes = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// UploadService stores uploaded media on local disk and hands back the public
// URL path it is served under.
type UploadService struct {
	baseDir string
	baseURL string
}

func NewUploadService(baseDir, baseURL string) *UploadService {
	return &UploadService{
		baseDir: baseDir,
		baseURL: baseURL,
	}
}

// SaveImage validates size and mime type, then writes the file under
// baseDir/category with a generated name. Returns the public URL path.
func (us *UploadService) SaveImage(c *gin.Context, fileHeader *multipart.FileHeader, category string) (string, error) {
	if fileHeader.Size > maxImageSizeBytes {
		return "", fmt.Errorf("file size exceeds maximum limit of %d MB", maxImageSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil {
		return "", err
	}
	mimeType := http.DetectContentType(buffer[:n])

	allowed := false
	for _, t := range allowedImageTypes {
		if mimeType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("invalid file type %q, allowed types: %v", mimeType, allowedImageTypes)
	}

	dir := filepath.Join(us.baseDir, category)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return us.baseURL + "/" + category + "/" + filename, nil
}
