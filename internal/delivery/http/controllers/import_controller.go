package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// Flash messages for the upload page.
const (
	MsgNoFile           = "No file selected."
	MsgFileTooLarge     = "File is too large."
	MsgUnreadableUpload = "The upload could not be read."
)

type ImportController struct {
	Logger         *slog.Logger
	Service        domain.ImportService
	Views          Renderer
	MaxUploadBytes int64
}

func NewImportController(logger *slog.Logger, svc domain.ImportService, v Renderer, maxUploadBytes int64) *ImportController {
	return &ImportController{
		Logger:         logger,
		Service:        svc,
		Views:          v,
		MaxUploadBytes: maxUploadBytes,
	}
}

func (c *ImportController) Form(w http.ResponseWriter, r *http.Request) {
	render(c.Logger, c.Views, w, r, http.StatusOK, "upload", "Upload CSV", nil)
}

// Upload imports the CSV sent in the "file" multipart field.
func (c *ImportController) Upload(w http.ResponseWriter, r *http.Request) {
	if c.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			helpers.RedirectWithFlash(w, r, "/upload", helpers.FlashDanger, MsgFileTooLarge)
		case errors.Is(err, http.ErrMissingFile):
			helpers.RedirectWithFlash(w, r, "/upload", helpers.FlashWarning, MsgNoFile)
		default:
			c.Logger.WarnContext(r.Context(), "upload rejected", "err", err)
			helpers.RedirectWithFlash(w, r, "/upload", helpers.FlashDanger, MsgUnreadableUpload)
		}
		return
	}
	defer file.Close()

	n, err := c.Service.Import(r.Context(), file)
	if err != nil {
		var ie *domain.ImportError
		if errors.As(err, &ie) {
			helpers.RedirectWithFlash(w, r, "/upload", helpers.FlashDanger, fmt.Sprintf("Error processing CSV: %v", ie.Err))
			return
		}
		serverError(c.Logger, c.Views, w, r, err)
		return
	}
	helpers.RedirectWithFlash(w, r, "/events", helpers.FlashSuccess, fmt.Sprintf("CSV import complete. Inserted %d events.", n))
}
