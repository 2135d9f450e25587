package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/khalilbouhlel1/threadly-api/internal/application"
	"github.com/khalilbouhlel1/threadly-api/pkg/response"
	"github.com/khalilbouhlel1/threadly-api/pkg/validation"
)

type NewsletterHandler struct {
	Svc    *application.NewsletterService
	Logger *logrus.Logger
}

func NewNewsletterHandler(svc *application.NewsletterService, logger *logrus.Logger) *NewsletterHandler {
	return &NewsletterHandler{Svc: svc, Logger: logger}
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type sendNewsletterRequest struct {
	Subject string `json:"subject" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Valid email is required", validation.ToDetails(err))
		return
	}

	if _, err := h.Svc.Subscribe(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, application.ErrAlreadySubscribed) {
			response.Fail(c, http.StatusBadRequest, "This email is already subscribed", nil)
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	response.OK(c, http.StatusCreated, "Successfully subscribed to the newsletter", nil)
}

func (h *NewsletterHandler) Send(c *gin.Context) {
	var req sendNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Subject and content are required", validation.ToDetails(err))
		return
	}

	count, err := h.Svc.Broadcast(c.Request.Context(), req.Subject, req.Content)
	if err != nil {
		if errors.Is(err, application.ErrNoSubscribers) {
			response.Fail(c, http.StatusNotFound, "No active subscribers found", nil)
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	response.OK(c, http.StatusOK, "Newsletter queued for delivery", gin.H{"recipients": count})
}

func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Fail(c, http.StatusBadRequest, "Unsubscribe token is required", nil)
		return
	}

	if err := h.Svc.Unsubscribe(c.Request.Context(), token); err != nil {
		if errors.Is(err, application.ErrUnknownToken) {
			response.Fail(c, http.StatusNotFound, "Unknown unsubscribe token", nil)
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	response.OK(c, http.StatusOK, "You have been unsubscribed", nil)
}
