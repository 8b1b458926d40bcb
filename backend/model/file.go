package model

import (
	"errors"

	"gorm.io/gorm"
)

// File kinds.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// RootParent is the parent id of top-level entries.
const RootParent uint64 = 0

// PageSize is the fixed page length of listings.
const PageSize = 20

// File is a catalog entry: a folder, a plain file or an image. LocalPath
// references the blob store and stays internal; folders have none.
type File struct {
	ID        uint64 `json:"id" gorm:"primaryKey"`
	UserID    uint64 `json:"userId" gorm:"index:idx_files_owner_parent"`
	Name      string `json:"name" gorm:"size:255;not null"`
	Type      string `json:"type" gorm:"size:16;not null"`
	IsPublic  bool   `json:"isPublic"`
	ParentID  uint64 `json:"parentId" gorm:"index:idx_files_owner_parent"`
	LocalPath string `json:"-" gorm:"size:255"`
	CreatedAt int64  `json:"-" gorm:"autoCreateTime"`
}

func ValidFileType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

// CreateFile inserts a new entry and assigns its id. Field validation is the
// caller's job; ownership and kind are immutable afterwards.
func CreateFile(f *File) error {
	return db.Create(f).Error
}

func GetFileByID(id uint64) (*File, error) {
	var f File
	err := db.First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFileByIDAndUser returns the entry only when it exists and belongs to
// userID. A foreign entry reads as absent, not as a permission error.
func GetFileByIDAndUser(id, userID uint64) (*File, error) {
	var f File
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFilesByParent returns one page of the entries owned by userID under
// parentID, ordered by id. Pages are zero-indexed; a page past the end is
// simply empty.
func ListFilesByParent(userID, parentID uint64, page int) ([]*File, error) {
	if page < 0 {
		page = 0
	}
	files := make([]*File, 0, PageSize)
	err := db.Where("user_id = ? AND parent_id = ?", userID, parentID).
		Order("id").
		Offset(page * PageSize).
		Limit(PageSize).
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// SetFilePublic flips the visibility flag in a single UPDATE scoped by id and
// owner, and returns the updated entry, or nil when no owned entry matches.
func SetFilePublic(id, userID uint64, public bool) (*File, error) {
	res := db.Model(&File{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_public", public)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return GetFileByID(id)
}

func CountFiles() (int64, error) {
	var n int64
	err := db.Model(&File{}).Count(&n).Error
	return n, err
}
