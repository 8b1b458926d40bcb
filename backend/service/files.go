package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"

	"files-manager/backend/common"
	"files-manager/backend/library/blobstore"
	"files-manager/backend/library/queue"
	"files-manager/backend/model"
)

// ErrNotFound covers entries that are absent, not owned by the caller, or
// whose content is unreadable. The cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// ValidationError carries the user-facing reason of a rejected request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validation(reason string) error {
	return &ValidationError{Reason: reason}
}

// UploadRequest is the body of POST /files. Data is the base64 payload,
// required unless Type is folder.
type UploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID uint64 `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// FileManager orchestrates catalog, blob store and job queue.
type FileManager struct {
	blobs *blobstore.Store
	jobs  *queue.Queue
}

func NewFileManager(blobs *blobstore.Store, jobs *queue.Queue) *FileManager {
	return &FileManager{blobs: blobs, jobs: jobs}
}

// Upload validates the request, persists the payload and the catalog entry,
// and enqueues a derivative job for images. The checks run in a fixed order;
// the first failing one names the rejection.
func (m *FileManager) Upload(ctx context.Context, userID uint64, req *UploadRequest) (*model.File, error) {
	if req.Name == "" {
		return nil, validation("Missing name")
	}
	if !model.ValidFileType(req.Type) {
		return nil, validation("Missing type")
	}
	if req.Data == "" && req.Type != model.TypeFolder {
		return nil, validation("Missing data")
	}
	if req.ParentID != model.RootParent {
		parent, err := model.GetFileByID(req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, validation("Parent not found")
		}
		if parent.Type != model.TypeFolder {
			return nil, validation("Parent is not a folder")
		}
	}

	entry := &model.File{
		UserID:   userID,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentID: req.ParentID,
	}

	if req.Type == model.TypeFolder {
		if err := model.CreateFile(entry); err != nil {
			return nil, err
		}
		return entry, nil
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return nil, validation("Invalid data")
	}
	ref, err := m.blobs.Write(data)
	if err != nil {
		return nil, err
	}
	entry.LocalPath = ref
	if err := model.CreateFile(entry); err != nil {
		return nil, err
	}

	// The entry is durably committed at this point, so a worker picking the
	// job up always finds it. Enqueue is fire and forget: a queue outage must
	// not undo an accepted upload.
	if req.Type == model.TypeImage {
		if _, err := m.jobs.Enqueue(ctx, DerivativeQueue, entry.ID, userID); err != nil {
			common.SysError(fmt.Sprintf("enqueue derivative job for file %d: %s", entry.ID, err.Error()))
		}
	}
	return entry, nil
}

// Show returns the caller's entry, or ErrNotFound when it does not exist or
// belongs to someone else.
func (m *FileManager) Show(userID, fileID uint64) (*model.File, error) {
	entry, err := model.GetFileByIDAndUser(fileID, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

// Index lists one page of the caller's entries under a parent.
func (m *FileManager) Index(userID, parentID uint64, page int) ([]*model.File, error) {
	return model.ListFilesByParent(userID, parentID, page)
}

// SetPublic flips an owned entry's visibility.
func (m *FileManager) SetPublic(userID, fileID uint64, public bool) (*model.File, error) {
	entry, err := model.SetFilePublic(fileID, userID, public)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

// GetContent returns the bytes and content type of an entry. Private entries
// read as absent for anyone but their owner, folders have no content, and a
// missing blob behind live metadata also reads as absent.
func (m *FileManager) GetContent(fileID, userID uint64, authed bool) ([]byte, string, error) {
	entry, err := model.GetFileByID(fileID)
	if err != nil {
		return nil, "", err
	}
	if entry == nil {
		return nil, "", ErrNotFound
	}
	if !entry.IsPublic && (!authed || userID != entry.UserID) {
		return nil, "", ErrNotFound
	}
	if entry.Type == model.TypeFolder {
		return nil, "", validation("A folder doesn't have content")
	}
	data, err := m.blobs.Read(entry.LocalPath)
	if errors.Is(err, blobstore.ErrNotFound) {
		common.SysError(fmt.Sprintf("file %d: blob %s missing on disk", entry.ID, entry.LocalPath))
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	ctype := mime.TypeByExtension(filepath.Ext(entry.Name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	return data, ctype, nil
}
