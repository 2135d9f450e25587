package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/repository"
	"github.com/khalilbouhlel1/threadly-api/pkg/helpers"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNoImage         = errors.New("no image file provided")
	ErrImageHosting    = errors.New("image storage not configured")
)

type ProductService struct {
	Repo      repository.ProductRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewProductService(repo repository.ProductRepository, gcs *storage.Client, bucket string, logger *logrus.Logger) *ProductService {
	return &ProductService{Repo: repo, GCS: gcs, GCSBucket: bucket, Logger: logger}
}

// ProductInput carries the normalized admin submission. Stock is the typed
// entry list; services never see raw form fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Subcategory string
	Sizes       []string
	Stock       []StockEntry
}

// ImageUpload is the staged multipart file for create/update.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

func (s *ProductService) List(ctx context.Context) ([]*entity.Product, error) {
	return s.Repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create validates stock against the declared sizes, uploads the image, and
// inserts the record. An upload failure aborts creation; an insert failure
// triggers best-effort cleanup of the just-uploaded object.
func (s *ProductService) Create(ctx context.Context, in ProductInput, image *ImageUpload) (*entity.Product, error) {
	if image == nil {
		return nil, ErrNoImage
	}
	if err := ValidateStock(in.Stock, in.Sizes); err != nil {
		return nil, err
	}

	url, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Sizes:       in.Sizes,
		Images:      []string{url},
		Stock:       BuildStock(in.Stock),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		s.deleteImage(ctx, url)
		return nil, err
	}
	return p, nil
}

// Update applies a partial field replacement. The stock map is replaced
// wholesale from the submitted entries: a size omitted from the update
// silently loses its stock entry. A new image, when supplied, replaces the
// image list; the old objects are left to the delete path.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput, image *ImageUpload) (*entity.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price > 0 {
		p.Price = in.Price
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.Subcategory != "" {
		p.Subcategory = in.Subcategory
	}
	if in.Sizes != nil {
		p.Sizes = in.Sizes
	}
	if in.Stock != nil {
		if err := ValidateStock(in.Stock, p.Sizes); err != nil {
			return nil, err
		}
		p.Stock = BuildStock(in.Stock)
	}
	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		p.Images = []string{url}
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes the record first, then attempts to delete each hosted
// image. Hosting failures are logged and swallowed; the record is gone
// regardless.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	for _, url := range p.Images {
		s.deleteImage(ctx, url)
	}
	return nil
}

func (s *ProductService) uploadImage(ctx context.Context, image *ImageUpload) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrImageHosting
	}
	ext := strings.ToLower(filepath.Ext(image.Filename))
	objectPath := filepath.ToSlash(filepath.Join("products", uuid.NewString()+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, image.ContentType, image.Reader)
}

func (s *ProductService) deleteImage(ctx context.Context, url string) {
	if s.GCS == nil || s.GCSBucket == "" {
		return
	}
	objectPath := helpers.ObjectPathFromURL(s.GCSBucket, url)
	if objectPath == "" {
		return
	}
	if err := helpers.DeleteObject(ctx, s.GCS, s.GCSBucket, objectPath); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("object", objectPath).Warn("image delete failed")
	}
}
