package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MediaStore is the boundary to the external media host. Only assets proxied
// through the API go through it (thumbnails, profile images, issued
// certificates); lecture videos and handouts are uploaded client-side.
type MediaStore interface {
	Upload(ctx context.Context, file io.Reader, folder, name string) (string, error)
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, folder, name string) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return res.SecureURL, nil
}
