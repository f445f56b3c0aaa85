package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/levaetras/internal/encoding"
)

const header = "Bairro;Região;Taxa\nSão Cristóvão;Zona Norte;R$ 9,50\n"

func TestNewUTF8Reader(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   []byte
		charset encoding.Charset
	}{
		{name: "utf-8", input: []byte(header), charset: encoding.UTF8},
		{name: "utf-8 with bom", input: append([]byte{0xEF, 0xBB, 0xBF}, header...), charset: encoding.UTF8BOM},
		{name: "utf-16 le", input: utf16, charset: encoding.UTF16LE},
		{name: "windows-1252", input: latin1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			if tt.charset != "" {
				assert.Equal(t, tt.charset, charset)
			} else {
				assert.NotEqual(t, encoding.UTF8, charset)
			}

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, header, string(got))
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, charset)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
