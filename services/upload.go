package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// maxPhotoWidth is the resize bound for uploaded photos; height scales
// proportionally.
const maxPhotoWidth = 800

// UploadService stores uploaded store photos: it rejects non-image
// uploads, resizes to maxPhotoWidth, and writes the file under a
// generated unique name. When a Cloudinary URL is configured the
// resized file is uploaded there and the hosted URL is returned
// instead of the local filename.
type UploadService struct {
	dir           string
	cloudinaryURL string
}

func NewUploadService(dir, cloudinaryURL string) *UploadService {
	return &UploadService{dir: dir, cloudinaryURL: cloudinaryURL}
}

// Save reads an image from r and returns the stored file reference.
func (s *UploadService) Save(ctx context.Context, r io.Reader, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", invalidField("photo", "that filetype isn't allowed")
	}

	img, err := imaging.Decode(r)
	if err != nil {
		return "", invalidField("photo", "could not decode image")
	}

	if img.Bounds().Dx() > maxPhotoWidth {
		img = imaging.Resize(img, maxPhotoWidth, 0, imaging.Lanczos)
	}

	ext := strings.TrimPrefix(contentType, "image/")
	name := fmt.Sprintf("%s.%s", uuid.New().String(), ext)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("saving photo: %w", err)
	}

	if s.cloudinaryURL != "" {
		return s.uploadToCloudinary(ctx, path, name)
	}
	return name, nil
}

func (s *UploadService) uploadToCloudinary(ctx context.Context, path, name string) (string, error) {
	cld, err := cloudinary.NewFromURL(s.cloudinaryURL)
	if err != nil {
		return "", fmt.Errorf("cloudinary init: %w", err)
	}

	publicID := strings.TrimSuffix(name, filepath.Ext(name))
	resp, err := cld.Upload.Upload(ctx, path, uploader.UploadParams{
		PublicID: publicID,
		Folder:   "stores",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}
