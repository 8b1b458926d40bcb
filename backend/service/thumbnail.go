package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"files-manager/backend/library/blobstore"
	"files-manager/backend/library/queue"
	"files-manager/backend/model"
)

// DerivativeQueue is the queue carrying image derivative jobs.
const DerivativeQueue = "derivative"

// thumbnailWidths are the fixed derivative sizes, written as _<width>
// siblings of the source blob.
var thumbnailWidths = [...]int{500, 250, 100}

// ThumbnailWorker consumes derivative jobs: it reads the source image and
// writes one resized copy per width. Reprocessing overwrites previous
// derivatives, so redelivery is harmless.
type ThumbnailWorker struct {
	blobs *blobstore.Store
}

func NewThumbnailWorker(blobs *blobstore.Store) *ThumbnailWorker {
	return &ThumbnailWorker{blobs: blobs}
}

// Handle processes one delivery. Failures that cannot heal on retry (bad
// payload, vanished entry, undecodable bytes) are permanent; IO failures are
// left retryable.
func (w *ThumbnailWorker) Handle(ctx context.Context, job *queue.Job) error {
	if job.FileID == 0 {
		return queue.Permanent(errors.New("missing fileId"))
	}
	if job.UserID == 0 {
		return queue.Permanent(errors.New("missing userId"))
	}
	entry, err := model.GetFileByIDAndUser(job.FileID, job.UserID)
	if err != nil {
		return err
	}
	if entry == nil {
		return queue.Permanent(fmt.Errorf("file %d not found", job.FileID))
	}

	src, err := w.blobs.Read(entry.LocalPath)
	if errors.Is(err, blobstore.ErrNotFound) {
		return queue.Permanent(fmt.Errorf("file %d: source blob missing", job.FileID))
	}
	if err != nil {
		return err
	}
	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return queue.Permanent(fmt.Errorf("file %d: decode image: %w", job.FileID, err))
	}

	for _, width := range thumbnailWidths {
		thumb, err := encodeImage(scaleToWidth(img, width), format)
		if err != nil {
			return fmt.Errorf("file %d: encode %d px derivative: %w", job.FileID, width, err)
		}
		ref := w.blobs.DerivedRef(entry.LocalPath, width)
		if err := w.blobs.WriteRef(ref, thumb); err != nil {
			return fmt.Errorf("file %d: %w", job.FileID, err)
		}
	}
	return nil
}

// scaleToWidth resizes to an exact width, preserving the aspect ratio.
func scaleToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if format == "jpeg" {
		err = jpeg.Encode(&buf, img, nil)
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
