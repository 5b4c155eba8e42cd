package util

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"revhub/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryClient is the object-storage collaborator: it accepts a file
// and returns a public URL. Used for user avatars and company logos.
type CloudinaryClient struct {
	cld *cloudinary.Cloudinary
	cfg *config.Config
}

func NewCloudinaryClient(cfg *config.Config) (*CloudinaryClient, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryClient{
		cld: cld,
		cfg: cfg,
	}, nil
}

// UploadFromReader writes the reader to a temp file and uploads it,
// returning the public URL.
func (c *CloudinaryClient) UploadFromReader(reader io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	tempFile := filepath.Join(os.TempDir(), uuid.New().String()+ext)

	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return "", fmt.Errorf("error writing temp file: %w", err)
	}
	defer os.Remove(tempFile)

	return c.upload(tempFile)
}

func (c *CloudinaryClient) upload(filePath string) (string, error) {
	ctx := context.Background()

	result, err := c.cld.Upload.Upload(ctx, filePath, uploader.UploadParams{
		Folder:         c.cfg.CloudinaryFolder,
		Transformation: "q_auto,f_webp,w_512",
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("error uploading to cloudinary: %w", err)
	}

	// Inject transformation into URL so the image is served as WebP
	url := result.SecureURL
	url = strings.Replace(url, "/upload/", "/upload/f_webp,q_auto,w_512/", 1)
	return url, nil
}
