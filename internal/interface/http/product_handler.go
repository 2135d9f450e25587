package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/khalilbouhlel1/threadly-api/internal/application"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
	"github.com/khalilbouhlel1/threadly-api/pkg/response"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

func productView(p *entity.Product) gin.H {
	return gin.H{
		"_id":         p.ID.Hex(),
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"subcategory": p.Subcategory,
		"sizes":       p.Sizes,
		"image":       p.Images,
		"stock":       p.Stock,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	views := make([]gin.H, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}
	response.OK(c, http.StatusOK, "", gin.H{"products": views})
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, "Product not found", nil)
		return
	}
	response.OK(c, http.StatusOK, "", gin.H{"product": productView(p)})
}

// parseProductForm normalizes the admin multipart submission into a typed
// input. Sizes arrive as a JSON array string; stock arrives either as a JSON
// array of {size, quantity} in the "stock" field or as per-size
// "stock[<size>]" fields.
func parseProductForm(c *gin.Context) (application.ProductInput, error) {
	var in application.ProductInput

	in.Name = strings.TrimSpace(c.PostForm("name"))
	in.Description = c.PostForm("description")
	in.Category = c.PostForm("category")
	in.Subcategory = c.PostForm("subcategory")
	if in.Name == "" {
		return in, errors.New("name is required")
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		return in, errors.New("price must be a non-negative number")
	}
	in.Price = price

	if raw := c.PostForm("sizes"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Sizes); err != nil {
			return in, errors.New("sizes must be a JSON array of strings")
		}
	}

	entries, err := application.ParseStockEntries(c.Request.PostForm, c.PostForm("stock"), in.Sizes)
	if err != nil {
		return in, err
	}
	in.Stock = entries
	return in, nil
}

func imageUpload(file *multipart.FileHeader) (*application.ImageUpload, func(), error) {
	f, err := file.Open()
	if err != nil {
		return nil, nil, err
	}
	up := &application.ImageUpload{
		Reader:      f,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
	}
	return up, func() { _ = f.Close() }, nil
}

func (h *ProductHandler) Create(c *gin.Context) {
	in, err := parseProductForm(c)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "No image file provided", nil)
		return
	}
	up, closeFn, err := imageUpload(file)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "could not read image file", nil)
		return
	}
	defer closeFn()

	p, err := h.Svc.Create(c.Request.Context(), in, up)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Product created", gin.H{"product": productView(p)})
}

func (h *ProductHandler) Update(c *gin.Context) {
	in, err := parseProductForm(c)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var up *application.ImageUpload
	if file, err := c.FormFile("image"); err == nil {
		var closeFn func()
		up, closeFn, err = imageUpload(file)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "could not read image file", nil)
			return
		}
		defer closeFn()
	}

	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in, up)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Product updated", gin.H{"product": productView(p)})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Product deleted", nil)
}

func (h *ProductHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrProductNotFound):
		response.Fail(c, http.StatusNotFound, "Product not found", nil)
	case errors.Is(err, application.ErrNoImage):
		response.Fail(c, http.StatusBadRequest, "No image file provided", nil)
	case errors.Is(err, application.ErrImageHosting):
		response.Fail(c, http.StatusInternalServerError, "Image storage not configured", nil)
	default:
		var se *application.StockError
		if errors.As(err, &se) {
			response.Fail(c, http.StatusBadRequest, se.Error(), nil)
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
