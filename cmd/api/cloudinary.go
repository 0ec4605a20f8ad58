package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// uploadParkPhoto pushes the file to Cloudinary under a generated public ID
// so two uploads can never clobber each other.
func (app *application) uploadParkPhoto(ctx context.Context, file io.Reader, parkID int64) (string, error) {
	publicID := fmt.Sprintf("park_%d_%s", parkID, uuid.NewString())

	resp, err := app.cld.Upload.Upload(
		ctx,
		file,
		uploader.UploadParams{
			Folder:    "parks",
			PublicID:  publicID,
			Overwrite: api.Bool(false),
		},
	)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

// deletePhotoAsset removes the binary behind a stored delivery URL.
func (app *application) deletePhotoAsset(ctx context.Context, photoURL string) error {
	publicID, err := publicIDFromURL(photoURL)
	if err != nil {
		return err
	}

	if _, err := app.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	return nil
}

// publicIDFromURL recovers the public ID from a Cloudinary delivery URL:
// everything after the "upload" path segment, minus the file extension.
func publicIDFromURL(photoURL string) (string, error) {
	parsed, err := url.Parse(photoURL)
	if err != nil {
		return "", fmt.Errorf("invalid photo URL: %w", err)
	}

	parts := strings.Split(parsed.Path, "/")
	for i, part := range parts {
		if part != "upload" || i+1 >= len(parts) {
			continue
		}
		rest := parts[i+1:]
		// delivery URLs carry a version segment like v1712345678
		if len(rest) > 1 && strings.HasPrefix(rest[0], "v") {
			if _, err := strconv.Atoi(rest[0][1:]); err == nil {
				rest = rest[1:]
			}
		}
		id := strings.Join(rest, "/")
		if dot := strings.LastIndex(id, "."); dot > 0 {
			id = id[:dot]
		}
		return id, nil
	}
	return "", errors.New("no public ID in photo URL")
}
