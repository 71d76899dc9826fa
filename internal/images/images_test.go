package images_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailmark-app/trailmark-backend/internal/images"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func uploadHeader(t *testing.T, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="test.img"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(8 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

// ---- FromUpload ------------------------------------------------------------

func TestFromUpload_NilHeader(t *testing.T) {
	data, err := images.FromUpload(nil)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, images.ErrNoFile)
}

func TestFromUpload_PNGRoundTrip(t *testing.T) {
	src := pngBytes(t)
	data, err := images.FromUpload(uploadHeader(t, "image/png", src))
	require.NoError(t, err)
	assert.Equal(t, src, data, "accepted bytes must be stored verbatim")
}

func TestFromUpload_DisallowedType(t *testing.T) {
	_, err := images.FromUpload(uploadHeader(t, "image/gif", []byte("GIF89a")))
	assert.ErrorIs(t, err, images.ErrInvalidType)
}

func TestFromUpload_TooLarge(t *testing.T) {
	big := make([]byte, images.MaxBytes+1)
	copy(big, pngBytes(t))
	_, err := images.FromUpload(uploadHeader(t, "image/png", big))
	assert.ErrorIs(t, err, images.ErrTooLarge)
}

// ---- FromBase64 ------------------------------------------------------------

func TestFromBase64_Empty(t *testing.T) {
	_, err := images.FromBase64("")
	assert.ErrorIs(t, err, images.ErrNoFile)
}

func TestFromBase64_PNGRoundTrip(t *testing.T) {
	src := pngBytes(t)
	data, err := images.FromBase64(base64.StdEncoding.EncodeToString(src))
	require.NoError(t, err)
	assert.Equal(t, src, data)
}

func TestFromBase64_DataURIPrefix(t *testing.T) {
	src := pngBytes(t)
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(src)
	data, err := images.FromBase64(encoded)
	require.NoError(t, err)
	assert.Equal(t, src, data)
}

func TestFromBase64_DeclaredMIMENotTrusted(t *testing.T) {
	// Prefix claims PNG but the payload is a GIF; sniffing must reject it.
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("GIF89a......"))
	_, err := images.FromBase64(encoded)
	assert.ErrorIs(t, err, images.ErrInvalidType)
}

func TestFromBase64_MalformedEncoding(t *testing.T) {
	_, err := images.FromBase64("not%%%base64!!")
	assert.ErrorIs(t, err, images.ErrInvalidEncoding)
}

func TestFromBase64_TooLargeRegardlessOfType(t *testing.T) {
	big := bytes.Repeat([]byte{0xAB}, images.MaxBytes+1)
	_, err := images.FromBase64(base64.StdEncoding.EncodeToString(big))
	assert.ErrorIs(t, err, images.ErrTooLarge)
}

func TestFromBase64_JPEGAccepted(t *testing.T) {
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x00}, 32)...)
	data, err := images.FromBase64(base64.StdEncoding.EncodeToString(jpeg))
	require.NoError(t, err)
	assert.Equal(t, jpeg, data)
}
