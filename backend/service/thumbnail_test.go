package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"files-manager/backend/library/blobstore"
	"files-manager/backend/library/queue"
	"files-manager/backend/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestThumbnailHandle(t *testing.T) {
	blobs := blobstore.New(t.TempDir())
	w := NewThumbnailWorker(blobs)
	owner := newTestUser(t, "thumb@x.com")

	ref, err := blobs.Write(pngBytes(t, 800, 600))
	require.NoError(t, err)
	entry := &model.File{UserID: owner.ID, Name: "pic.png", Type: model.TypeImage, LocalPath: ref}
	require.NoError(t, model.CreateFile(entry))

	job := &queue.Job{ID: "j1", Queue: DerivativeQueue, FileID: entry.ID, UserID: owner.ID}
	require.NoError(t, w.Handle(context.Background(), job))

	for width, height := range map[int]int{500: 375, 250: 187, 100: 75} {
		data, err := blobs.Read(blobs.DerivedRef(ref, width))
		require.NoError(t, err, "derivative %d missing", width)

		img, format, err := image.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, width, img.Bounds().Dx())
		assert.Equal(t, height, img.Bounds().Dy())
	}
}

func TestThumbnailHandleIsIdempotent(t *testing.T) {
	blobs := blobstore.New(t.TempDir())
	w := NewThumbnailWorker(blobs)
	owner := newTestUser(t, "thumb-again@x.com")

	ref, err := blobs.Write(pngBytes(t, 640, 480))
	require.NoError(t, err)
	entry := &model.File{UserID: owner.ID, Name: "pic.png", Type: model.TypeImage, LocalPath: ref}
	require.NoError(t, model.CreateFile(entry))

	job := &queue.Job{FileID: entry.ID, UserID: owner.ID}
	require.NoError(t, w.Handle(context.Background(), job))
	// A redelivered job just overwrites the derivatives.
	require.NoError(t, w.Handle(context.Background(), job))
}

func TestThumbnailHandlePermanentFailures(t *testing.T) {
	blobs := blobstore.New(t.TempDir())
	w := NewThumbnailWorker(blobs)
	owner := newTestUser(t, "thumb-bad@x.com")
	ctx := context.Background()

	err := w.Handle(ctx, &queue.Job{UserID: owner.ID})
	assert.True(t, queue.IsPermanent(err), "missing fileId: %v", err)

	err = w.Handle(ctx, &queue.Job{FileID: 1})
	assert.True(t, queue.IsPermanent(err), "missing userId: %v", err)

	err = w.Handle(ctx, &queue.Job{FileID: 99999999, UserID: owner.ID})
	assert.True(t, queue.IsPermanent(err), "unknown file: %v", err)

	// Bytes that never decode cannot succeed on retry.
	ref, err := blobs.Write([]byte("not an image"))
	require.NoError(t, err)
	entry := &model.File{UserID: owner.ID, Name: "junk.png", Type: model.TypeImage, LocalPath: ref}
	require.NoError(t, model.CreateFile(entry))
	err = w.Handle(ctx, &queue.Job{FileID: entry.ID, UserID: owner.ID})
	assert.True(t, queue.IsPermanent(err), "undecodable image: %v", err)

	// Source blob vanished from disk.
	orphan := &model.File{UserID: owner.ID, Name: "gone.png", Type: model.TypeImage, LocalPath: "missing"}
	require.NoError(t, model.CreateFile(orphan))
	err = w.Handle(ctx, &queue.Job{FileID: orphan.ID, UserID: owner.ID})
	assert.True(t, queue.IsPermanent(err), "missing blob: %v", err)
}

func TestScaleToWidthAspectRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 400))
	dst := scaleToWidth(src, 500)
	assert.Equal(t, 500, dst.Bounds().Dx())
	assert.Equal(t, 200, dst.Bounds().Dy())

	// Degenerate sources still produce at least one row.
	tiny := image.NewRGBA(image.Rect(0, 0, 5000, 1))
	dst = scaleToWidth(tiny, 100)
	assert.Equal(t, 1, dst.Bounds().Dy())
}
