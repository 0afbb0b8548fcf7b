package storage

import (
	"context"

	"go.uber.org/zap"
)

// Upload types accepted by the upload endpoint.
const (
	UploadProfilePicture = "profile-picture"
	UploadHotelImage     = "hotel-image"
	UploadRoomImage      = "hotel-room-image"
)

// UploadRequest is one multipart upload.
type UploadRequest struct {
	UserID     string
	UploadType string
	HotelID    string
	RoomID     string
	FileName   string
	Data       []byte
}

// UploadResult is what the client gets back. RemoteURL is set when the file
// was mirrored to Cloudinary.
type UploadResult struct {
	URL       string `json:"url"`
	RemoteURL string `json:"remoteUrl,omitempty"`
}

// StorageService stores uploads and resolves them for serving.
type StorageService interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	// Resolve maps a public sub path to an existing file on disk and its content type.
	Resolve(subPath string) (string, string, error)
}

// Mirror copies a stored file to a remote media host.
type Mirror interface {
	Mirror(ctx context.Context, localPath, folder string) (string, error)
}

// DefaultStorageService keeps files on local disk. Mirror may be nil.
type DefaultStorageService struct {
	Store  *LocalStore
	Mirror Mirror
	Logger *zap.Logger
}
