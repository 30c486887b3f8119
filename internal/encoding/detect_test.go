package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Vietnamese characters should pass through unchanged.
	input := "\"Tên sản phẩm\",\"Đơn vị tính\"\n\"Bò viên\",\"kg\"\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// The BOM our own export prepends must be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("\"Tên sản phẩm\",\"Đơn vị tính\"\n")

	r, err := encoding.NewUTF8Reader(bytes.NewReader(append(bom, content...)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, string(content), string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// Spreadsheets sometimes re-save CSVs as UTF-16 with a BOM.
	original := "\"Tên sản phẩm\",\"Ghi chú\"\n"

	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	utf16Bytes, err := encoder.Bytes([]byte(original))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(utf16Bytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, original, string(got))
}
