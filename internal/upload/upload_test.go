package upload

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/otp-signup/internal/mocks"
	"github.com/dtroode/otp-signup/internal/model"
	"github.com/dtroode/otp-signup/internal/testutil"
)

func newUploader(t *testing.T, storage model.Storage) *Uploader {
	u := NewUploader(storage, "profilePic", DefaultMaxSize)
	u.now = func() time.Time { return time.UnixMilli(1_700_000_000_123) }
	return u
}

func TestUploader_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("jpeg stored under generated name", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, mock.Anything).Return(false, nil).Once()
		var stored []byte
		storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool { return key != "" }), mock.Anything, mock.AnythingOfType("int64")).
			Return(func(_ context.Context, _ string, r io.Reader, _ int64) error {
				stored, _ = io.ReadAll(r)
				return nil
			})
		storage.On("Location", mock.Anything).Return(func(key string) string { return "/srv/uploads/" + key })

		data := testutil.JPEG(t)
		fh := testutil.FileHeader(t, testutil.FilePart{Field: "profilePic", FileName: "Me.JPG", ContentType: "image/jpeg", Data: data})

		ref, err := newUploader(t, storage).Save(ctx, fh)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^profilePic-1700000000123-[0-9a-f]{8}\.jpg$`), ref.FileName)
		assert.Equal(t, "Me.JPG", ref.OriginalName)
		assert.Equal(t, "/srv/uploads/"+ref.FileName, ref.StoredPath)
		assert.Equal(t, data, stored)
		assert.False(t, ref.Empty())
	})

	t.Run("png accepted", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, mock.Anything).Return(false, nil).Once()
		storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		storage.On("Location", mock.Anything).Return("s3://avatars/x.png")

		fh := testutil.FileHeader(t, testutil.FilePart{Field: "profilePic", FileName: "a.png", ContentType: "image/png", Data: testutil.PNG(t)})
		ref, err := newUploader(t, storage).Save(ctx, fh)
		require.NoError(t, err)
		assert.Equal(t, "s3://avatars/x.png", ref.StoredPath)
	})

	t.Run("padded jpeg under the ceiling", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, mock.Anything).Return(false, nil).Once()
		storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, int64(2<<20)).Return(nil)
		storage.On("Location", mock.Anything).Return("/srv/uploads/x.jpg")

		fh := testutil.FileHeader(t, testutil.FilePart{Field: "profilePic", FileName: "a.jpeg", ContentType: "image/jpeg", Data: testutil.PaddedJPEG(t, 2<<20)})
		_, err := newUploader(t, storage).Save(ctx, fh)
		require.NoError(t, err)
	})

	t.Run("storage failure", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, mock.Anything).Return(false, nil).Once()
		storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

		fh := testutil.FileHeader(t, testutil.FilePart{Field: "profilePic", FileName: "a.png", ContentType: "image/png", Data: testutil.PNG(t)})
		_, err := newUploader(t, storage).Save(ctx, fh)

		var depErr *model.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, model.DependencyStorage, depErr.Dependency)
	})

	t.Run("taken names are skipped", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		var checked []string
		storage.On("Exists", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { checked = append(checked, args.String(1)) }).
			Return(true, nil).Twice()
		storage.On("Exists", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { checked = append(checked, args.String(1)) }).
			Return(false, nil).Once()
		var uploaded string
		storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { uploaded = args.String(1) }).
			Return(nil).Once()
		storage.On("Location", mock.Anything).Return("/srv/uploads/x.png")

		fh := testutil.FileHeader(t, testutil.FilePart{Field: "profilePic", FileName: "a.png", ContentType: "image/png", Data: testutil.PNG(t)})
		ref, err := newUploader(t, storage).Save(ctx, fh)
		require.NoError(t, err)

		require.Len(t, checked, 3)
		assert.Equal(t, checked[2], uploaded)
		assert.Equal(t, uploaded, ref.FileName)
	})

	t.Run("every name taken", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, mock.Anything).Return(true, nil).Times(maxNameAttempts)

		fh := testutil.FileHeader(t, testutil.FilePart{Field: "profilePic", FileName: "a.png", ContentType: "image/png", Data: testutil.PNG(t)})
		_, err := newUploader(t, storage).Save(ctx, fh)

		var depErr *model.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, model.DependencyStorage, depErr.Dependency)
		storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("existence check failure", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, mock.Anything).Return(false, errors.New("minio unreachable")).Once()

		fh := testutil.FileHeader(t, testutil.FilePart{Field: "profilePic", FileName: "a.png", ContentType: "image/png", Data: testutil.PNG(t)})
		_, err := newUploader(t, storage).Save(ctx, fh)

		var depErr *model.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, model.DependencyStorage, depErr.Dependency)
		storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newUploader(t, mocks.NewStorage(t)).Save(ctx, nil)

		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"profilePic"}, vErr.Fields)
	})
}

func TestUploader_Save_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		part   testutil.FilePart
		reason string
	}{
		{
			name:   "gif extension",
			part:   testutil.FilePart{FileName: "a.gif", ContentType: "image/gif", Data: []byte("GIF89a")},
			reason: ReasonType,
		},
		{
			name:   "no extension",
			part:   testutil.FilePart{FileName: "photo", ContentType: "image/jpeg", Data: testutil.JPEG(t)},
			reason: ReasonType,
		},
		{
			name:   "jpg extension with text content type",
			part:   testutil.FilePart{FileName: "a.jpg", ContentType: "text/plain", Data: testutil.JPEG(t)},
			reason: ReasonType,
		},
		{
			name:   "png extension with non image bytes",
			part:   testutil.FilePart{FileName: "a.png", ContentType: "image/png", Data: []byte("definitely not a png")},
			reason: ReasonContent,
		},
		{
			name:   "ten megabytes",
			part:   testutil.FilePart{FileName: "big.jpg", ContentType: "image/jpeg", Data: testutil.PaddedJPEG(t, 10<<20)},
			reason: ReasonSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.part.Field = "profilePic"
			fh := testutil.FileHeader(t, tt.part)

			_, err := newUploader(t, mocks.NewStorage(t)).Save(ctx, fh)
			require.ErrorIs(t, err, model.ErrUploadRejected)

			var rejection *model.UploadRejection
			require.ErrorAs(t, err, &rejection)
			assert.Equal(t, tt.reason, rejection.Reason)
		})
	}
}

func TestUploader_Discard(t *testing.T) {
	ctx := context.Background()

	storage := mocks.NewStorage(t)
	storage.On("Delete", mock.Anything, "profilePic-1-abcd0123.jpg").Return(nil).Once()
	u := newUploader(t, storage)

	require.NoError(t, u.Discard(ctx, model.FileRef{FileName: "profilePic-1-abcd0123.jpg"}))
	require.NoError(t, u.Discard(ctx, model.FileRef{}))

	storage = mocks.NewStorage(t)
	storage.On("Delete", mock.Anything, "x.jpg").Return(errors.New("gone"))
	err := newUploader(t, storage).Discard(ctx, model.FileRef{FileName: "x.jpg"})
	require.Error(t, err)
}
