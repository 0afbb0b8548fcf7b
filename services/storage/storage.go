package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"flynext/utils"

	"go.uber.org/zap"
)

const defaultExt = ".jpg"

// PublicPrefix is the URL prefix uploads are served under.
const PublicPrefix = "/api/upload/"

// Destination computes the sub path for an upload. Images are named by content hash.
func Destination(req UploadRequest) (string, error) {
	ext := strings.ToLower(filepath.Ext(req.FileName))
	if ext == "" {
		ext = defaultExt
	}
	sum := sha256.Sum256(req.Data)
	hash := hex.EncodeToString(sum[:])

	switch req.UploadType {
	case UploadProfilePicture:
		return path.Join("users", req.UserID, "profile-picture"+ext), nil
	case UploadHotelImage:
		if req.HotelID == "" {
			return "", utils.BadRequest("Missing hotel ID")
		}
		return path.Join("hotels", req.HotelID, "images", hash+ext), nil
	case UploadRoomImage:
		if req.HotelID == "" || req.RoomID == "" {
			return "", utils.BadRequest("Missing hotel ID or room ID")
		}
		return path.Join("hotels", req.HotelID, "rooms", req.RoomID, hash+ext), nil
	default:
		return path.Join("misc", req.UserID+"_"+hash+ext), nil
	}
}

func (s *DefaultStorageService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

// Upload writes the file to disk and, for hotel and room images, mirrors it remotely.
func (s *DefaultStorageService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if len(req.Data) == 0 {
		return nil, utils.BadRequest("No file provided")
	}
	if strings.Contains(req.HotelID, "..") || strings.ContainsAny(req.HotelID+req.RoomID+req.UserID, `/\`) {
		return nil, utils.BadRequest("Invalid upload target")
	}
	subPath, err := Destination(req)
	if err != nil {
		return nil, err
	}

	full, err := s.Store.Save(subPath, req.Data)
	if errors.Is(err, ErrInvalidPath) {
		return nil, utils.BadRequest("Invalid upload target")
	}
	if err != nil {
		return nil, utils.Internal("failed to store upload", err)
	}

	result := &UploadResult{URL: PublicPrefix + subPath}
	if s.Mirror != nil && (req.UploadType == UploadHotelImage || req.UploadType == UploadRoomImage) {
		remote, err := s.Mirror.Mirror(ctx, full, "flynext/"+path.Dir(subPath))
		if err != nil {
			s.logger().Warn("image mirror failed", zap.String("path", subPath), zap.Error(err))
		} else {
			result.RemoteURL = remote
		}
	}
	s.logger().Info("file uploaded", zap.String("path", subPath), zap.Int("bytes", len(req.Data)))
	return result, nil
}

// Resolve returns the disk path and content type of a served file.
func (s *DefaultStorageService) Resolve(subPath string) (string, string, error) {
	full, err := s.Store.Lookup(subPath)
	if errors.Is(err, ErrInvalidPath) {
		return "", "", utils.BadRequest("Invalid file path")
	}
	if err != nil {
		return "", "", utils.NotFound("File not found")
	}
	contentType := mime.TypeByExtension(filepath.Ext(full))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return full, contentType, nil
}
