package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/calhas/internal/storage"
)

const maxUploadSize = 10 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	s.upload(w, r, chi.URLParam(r, "bucket"))
}

// handleContactImageUpload lets the public contact form attach images.
func (s *server) handleContactImageUpload(w http.ResponseWriter, r *http.Request) {
	s.upload(w, r, storage.BucketContacts)
}

// upload stores the multipart "file" field in bucket. The content type is
// sniffed from the data, not taken from the client.
func (s *server) upload(w http.ResponseWriter, r *http.Request, bucket string) {
	if !storage.ValidBucket(bucket) {
		writeError(w, http.StatusNotFound, "unknown_bucket", "Destino de upload inválido")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", "Arquivo maior que 10 MB")
			return
		}
		writeError(w, http.StatusBadRequest, "file_required", "Envie um arquivo no campo file")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", "Arquivo maior que 10 MB")
		return
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeFailure(w, r, "read upload", err)
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		writeError(w, http.StatusUnsupportedMediaType, "invalid_content_type", "Apenas imagens são aceitas")
		return
	}

	key, err := storage.NewKey(bucket, ext)
	if err != nil {
		writeFailure(w, r, "new upload key", err)
		return
	}
	url, err := s.blobs.Save(r.Context(), key, io.MultiReader(bytes.NewReader(head), file), contentType)
	if err != nil {
		slog.ErrorContext(r.Context(), "upload failed", "error", err, "bucket", bucket)
		writeError(w, http.StatusInternalServerError, "upload_failed", "Falha ao enviar o arquivo")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url, "key": key})
}
