package testutil

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

// FilePart describes a file field of a multipart form.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// MultipartBody encodes fields and an optional file into a multipart body and returns it with its content type.
func MultipartBody(t testing.TB, fields map[string]string, file *FilePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.FileName))
		h.Set("Content-Type", file.ContentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.Data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

// FileHeader returns the parsed header of file, as a handler would receive it.
func FileHeader(t testing.TB, file FilePart) *multipart.FileHeader {
	t.Helper()

	body, contentType := MultipartBody(t, nil, &file)
	_, params, err := parseBoundary(contentType)
	require.NoError(t, err)

	form, err := multipart.NewReader(body, params).ReadForm(64 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := form.File[file.Field]
	require.Len(t, headers, 1)
	return headers[0]
}

func parseBoundary(contentType string) (string, string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", "", err
	}
	return mediaType, params["boundary"], nil
}
