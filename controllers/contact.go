package controllers

import (
	"log/slog"
	"net/http"

	"brelis-api/utils"

	"github.com/go-playground/validator/v10"
)

// ContactRequest is the storefront contact-form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=80"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactController forwards contact-form messages to the store address.
type ContactController struct {
	Settings     *SettingsController
	EmailService *utils.EmailService
	validate     *validator.Validate
}

// NewContactController creates a new ContactController.
func NewContactController(settings *SettingsController, emailService *utils.EmailService) *ContactController {
	return &ContactController{
		Settings:     settings,
		EmailService: emailService,
		validate:     validator.New(),
	}
}

// Submit accepts the form and mails it to the configured store email.
func (cc *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeAndValidate(w, r, cc.validate, &req) {
		return
	}

	storeEmail := cc.Settings.Current().Store.Email

	go func(req ContactRequest, storeEmail string) {
		if err := cc.EmailService.SendContactEmail(storeEmail, req.Name, req.Email, req.Message); err != nil {
			slog.Error("failed to forward contact message", slog.String("error", err.Error()))
		}
	}(req, storeEmail)

	utils.RespondMessage(w, http.StatusOK, "Thanks for reaching out. We will get back to you soon.")
}
