// Package upload validates and stores profile images submitted with a registration.
package upload

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/dtroode/otp-signup/internal/model"
)

// DefaultMaxSize is the largest accepted image, in bytes.
const DefaultMaxSize int64 = 5 << 20

const maxNameAttempts = 3

// Rejection reasons reported to the client.
const (
	ReasonType    = "Only JPEG, JPG, and PNG files are allowed!"
	ReasonSize    = "File too large"
	ReasonContent = "File is not a valid image"
)

var allowedFormats = map[imaging.Format]bool{
	imaging.JPEG: true,
	imaging.PNG:  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// Uploader stores accepted images through a model.Storage backend.
type Uploader struct {
	storage model.Storage
	field   string
	maxSize int64
	now     func() time.Time
}

// NewUploader creates an uploader naming files after field.
func NewUploader(storage model.Storage, field string, maxSize int64) *Uploader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Uploader{
		storage: storage,
		field:   field,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Save checks the file against the allow-list and size ceiling, then stores it
// under a generated name. Rejections match model.ErrUploadRejected.
func (u *Uploader) Save(ctx context.Context, fh *multipart.FileHeader) (model.FileRef, error) {
	if fh == nil {
		return model.FileRef{}, model.NewValidationError("file is required", u.field)
	}
	if fh.Size > u.maxSize {
		return model.FileRef{}, &model.UploadRejection{Reason: ReasonSize}
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if format, err := imaging.FormatFromExtension(ext); err != nil || !allowedFormats[format] {
		return model.FileRef{}, &model.UploadRejection{Reason: ReasonType}
	}
	if !allowedContentTypes[strings.ToLower(fh.Header.Get("Content-Type"))] {
		return model.FileRef{}, &model.UploadRejection{Reason: ReasonType}
	}

	src, err := fh.Open()
	if err != nil {
		return model.FileRef{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, u.maxSize+1))
	if err != nil {
		return model.FileRef{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > u.maxSize {
		return model.FileRef{}, &model.UploadRejection{Reason: ReasonSize}
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return model.FileRef{}, &model.UploadRejection{Reason: ReasonContent}
	}

	name, err := u.freeName(ctx, ext)
	if err != nil {
		return model.FileRef{}, err
	}
	if err := u.storage.Upload(ctx, name, bytes.NewReader(data), int64(len(data))); err != nil {
		return model.FileRef{}, model.NewDependencyError(model.DependencyStorage, err)
	}

	return model.FileRef{
		FileName:     name,
		OriginalName: filepath.Base(fh.Filename),
		StoredPath:   u.storage.Location(name),
	}, nil
}

// Discard removes a file stored by Save.
func (u *Uploader) Discard(ctx context.Context, ref model.FileRef) error {
	if ref.FileName == "" {
		return nil
	}
	if err := u.storage.Delete(ctx, ref.FileName); err != nil {
		return fmt.Errorf("failed to discard %s: %w", ref.FileName, err)
	}
	return nil
}

// freeName generates names until one is not taken in storage.
func (u *Uploader) freeName(ctx context.Context, ext string) (string, error) {
	for range maxNameAttempts {
		name, err := u.fileName(ext)
		if err != nil {
			return "", err
		}
		exists, err := u.storage.Exists(ctx, name)
		if err != nil {
			return "", model.NewDependencyError(model.DependencyStorage, err)
		}
		if !exists {
			return name, nil
		}
	}
	return "", model.NewDependencyError(model.DependencyStorage,
		fmt.Errorf("no free file name after %d attempts", maxNameAttempts))
}

// fileName returns <field>-<unix millis>-<8 hex><ext>.
func (u *Uploader) fileName(ext string) (string, error) {
	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	return fmt.Sprintf("%s-%d-%s%s", u.field, u.now().UnixMilli(), hex.EncodeToString(suffix[:]), ext), nil
}
