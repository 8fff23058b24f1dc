package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"brelis-api/config"
	"brelis-api/utils"

	"github.com/google/uuid"
)

// UploadController stores product/lookbook images under the upload
// directory. The production image CDN is an external collaborator; local
// disk stands in behind the same endpoint.
type UploadController struct {
	cfg *config.Config
}

// NewUploadController creates a new UploadController.
func NewUploadController(cfg *config.Config) *UploadController {
	return &UploadController{cfg: cfg}
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Upload accepts a multipart "image" file and returns its public path.
func (uc *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uc.cfg.Upload.MaxBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	file, handler, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to retrieve file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(handler.Filename))
	if !allowedImageExts[ext] {
		utils.RespondError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	if err := os.MkdirAll(uc.cfg.Upload.Dir, os.ModePerm); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(uc.cfg.Upload.Dir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create file on server")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	utils.RespondData(w, http.StatusCreated, map[string]string{
		"url": "/uploads/" + filename,
	})
}
