package api

import (
	"net/http"

	"github.com/dustin/go-humanize"
)

const maxUploadBytes = 50 << 20 // 50 MB

// Upload handles POST /uploads (multipart/form-data, field "file"). The file
// is read for its name and size only; nothing is stored.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp files only

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	file.Close()

	url, err := h.editor.UploadImage(r.Context(), header.Filename, header.Size)
	if err != nil {
		writeError(w, r, "upload", err)
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		URL:       url,
		Name:      header.Filename,
		Size:      header.Size,
		SizeLabel: humanize.IBytes(uint64(header.Size)),
	})
}
