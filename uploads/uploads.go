package uploads

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cinebook/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const (
	uploadDir     = "./static/uploads"
	thumbDir      = "./static/uploads/thumb"
	maxUploadSize = 10 << 20 // 10 MB
	thumbWidth    = 300
)

func init() {
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		log.Printf("failed to create upload dirs: %v", err)
	}
}

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadImage stores a poster or cinema image and writes a resized
// thumbnail next to it. Admin only; wired behind RequireRole in routes.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image too large or malformed form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	ext := extByMime[header.Header.Get("Content-Type")]
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(header.Filename))
	}
	name := utils.GetUUID() + ext
	dst := filepath.Join(uploadDir, name)

	out, err := os.Create(dst)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dst)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	out.Close()

	// Thumbnail failure is not fatal; the original is already stored.
	thumbURL := ""
	if img, err := imaging.Open(dst); err == nil {
		thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
		thumbPath := filepath.Join(thumbDir, name)
		if err := imaging.Save(thumb, thumbPath); err == nil {
			thumbURL = "/static/uploads/thumb/" + name
		} else {
			log.Printf("thumbnail save failed for %s: %v", name, err)
		}
	} else {
		log.Printf("thumbnail decode failed for %s: %v", name, err)
	}

	utils.RespondWithData(w, http.StatusCreated, utils.M{
		"url":   "/static/uploads/" + name,
		"thumb": thumbURL,
	})
}

// DeleteImage removes an uploaded image and its thumbnail.
func DeleteImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := filepath.Base(ps.ByName("name"))
	if name == "" || name == "." || strings.Contains(name, "..") {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid file name")
		return
	}

	path := filepath.Join(uploadDir, name)
	if _, err := os.Stat(path); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}

	if err := os.Remove(path); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	os.Remove(filepath.Join(thumbDir, name))

	utils.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("Deleted %s", name))
}
