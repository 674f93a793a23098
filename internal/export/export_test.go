package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bom = "\xEF\xBB\xBF"

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTXT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTXT(&buf, []string{"first", "second"}))

	assert.Equal(t, "first\r\nsecond\r\n", buf.String())
}

func TestWriteTXTEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTXT(&buf, nil))

	assert.Empty(t, buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []string{"plain", "Xy7!Qw"}))

	assert.Equal(t, bom+"#,Password\r\n1,plain\r\n2,Xy7!Qw\r\n", buf.String())
}

func TestWriteCSVQuoting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []string{"ab,c", `d"e`}))

	assert.Equal(t, bom+"#,Password\r\n1,\"ab,c\"\r\n2,\"d\"\"e\"\r\n", buf.String())
}

func TestWriteCSVEmptyHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, bom+"#,Password\r\n", buf.String())
}

func TestWriteCSVWriterError(t *testing.T) {
	assert.Error(t, WriteCSV(failingWriter{}, []string{"abc"}))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "txt", want: FormatTXT},
		{in: "CSV", want: FormatCSV},
		{in: " csv ", want: FormatCSV},
		{in: "xlsx", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, ".csv", FormatCSV.Extension())
	assert.Equal(t, ".txt", FormatTXT.Extension())
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Equal(t, "text/plain; charset=utf-8", FormatTXT.ContentType())
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(Format("xml"), &buf, []string{"a"}), ErrUnknownFormat)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	txtPath := filepath.Join(dir, "out.txt")
	require.NoError(t, WriteFile(txtPath, FormatTXT, []string{"one", "two"}))
	data, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Equal(t, "one\r\ntwo\r\n", string(data))

	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, WriteFile(csvPath, FormatCSV, []string{"one"}))
	data, err = os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, bom+"#,Password\r\n1,one\r\n", string(data))
}

func TestWriteFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is long\r\n"), 0o600))

	require.NoError(t, WriteFile(path, FormatTXT, []string{"new"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\r\n", string(data))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	assert.Error(t, WriteFile(path, FormatCSV, []string{"x"}))
}
