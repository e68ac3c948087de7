package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr  error
	putKey  string
	putSize int64
	putOpts minioLib.PutObjectOptions
	putBody []byte

	removeErr error
	removed   string

	statErr error
}

func (f *fakeObjects) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeObjects) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeObjects) PutObject(_ context.Context, _ string, key string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	f.putKey, f.putSize, f.putOpts = key, size, opts
	f.putBody, _ = io.ReadAll(r)
	return minioLib.UploadInfo{Key: key, Size: size}, nil
}

func (f *fakeObjects) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	f.removed = key
	return f.removeErr
}

func (f *fakeObjects) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClientWithAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket exists", func(t *testing.T) {
		api := &fakeObjects{bucketExists: true}
		c, err := NewClientWithAPI(ctx, api, "avatars")
		require.NoError(t, err)
		assert.Equal(t, "avatars", c.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("bucket created", func(t *testing.T) {
		api := &fakeObjects{}
		_, err := NewClientWithAPI(ctx, api, "avatars")
		require.NoError(t, err)
		assert.Equal(t, "avatars", api.madeBucket)
	})

	t.Run("exists check fails", func(t *testing.T) {
		c, err := NewClientWithAPI(ctx, &fakeObjects{bucketExistsErr: errors.New("boom")}, "avatars")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ensure bucket exists")
	})

	t.Run("make bucket fails", func(t *testing.T) {
		c, err := NewClientWithAPI(ctx, &fakeObjects{makeBucketErr: errors.New("denied")}, "avatars")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create bucket")
	})
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeObjects{}
		c := &Client{api: api, bucket: "avatars"}
		err := c.Upload(ctx, "profilePic-1.png", bytes.NewReader([]byte("data")), 4)
		require.NoError(t, err)
		assert.Equal(t, "profilePic-1.png", api.putKey)
		assert.Equal(t, int64(4), api.putSize)
		assert.Equal(t, "image/png", api.putOpts.ContentType)
		assert.Equal(t, []byte("data"), api.putBody)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeObjects{putErr: errors.New("put-fail")}, bucket: "avatars"}
		err := c.Upload(ctx, "k.jpg", bytes.NewReader(nil), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	api := &fakeObjects{}
	c := &Client{api: api, bucket: "avatars"}
	require.NoError(t, c.Delete(ctx, "k.jpg"))
	assert.Equal(t, "k.jpg", api.removed)

	c = &Client{api: &fakeObjects{removeErr: errors.New("remove-fail")}, bucket: "avatars"}
	err := c.Delete(ctx, "k.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete object")
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		statErr error
		want    bool
		wantErr bool
	}{
		{name: "exists", want: true},
		{name: "not found", statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}},
		{name: "other error", statErr: errors.New("stat-fail"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{api: &fakeObjects{statErr: tt.statErr}, bucket: "avatars"}
			ok, err := c.Exists(ctx, "k.jpg")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to stat object")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestClient_Location(t *testing.T) {
	c := &Client{api: &fakeObjects{}, bucket: "avatars"}
	assert.Equal(t, "s3://avatars/profilePic-1.jpg", c.Location("profilePic-1.jpg"))
}
