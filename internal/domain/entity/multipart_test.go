package entity

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeForm(t *testing.T, form *MultipartForm) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteTo(w))
	require.NoError(t, w.Close())
	return &buf, w.Boundary()
}

func TestMultipartFormAddReplacesByName(t *testing.T) {
	form := NewMultipartForm()
	form.Add(HTTPContent{Name: "a", Data: []byte("1")})
	form.Add(HTTPContent{Name: "b", Data: []byte("2")})
	form.Add(HTTPContent{Name: "a", Data: []byte("3")})

	require.Len(t, form.Parts(), 2)
	assert.Equal(t, "a", form.Parts()[0].Name)
	content, ok := form.GetContent("a")
	require.True(t, ok)
	assert.Equal(t, []byte("3"), content.Data)

	_, ok = form.GetContent("missing")
	assert.False(t, ok)
}

func TestMultipartFormZeroValueAdd(t *testing.T) {
	var form MultipartForm
	form.Add(HTTPContent{Name: "x"})
	assert.True(t, form.HasContent("x"))
}

func TestMultipartFormWireRoundTrip(t *testing.T) {
	var in ArrayOfLogsResponse
	in.SetData(sampleLogs())
	in.SetMeta(sampleMeta())

	form := NewMultipartForm()
	require.NoError(t, in.ToMultipart(form, "logs"))
	form.Add(HTTPContent{Name: "attachments", FileName: `shift "notes".txt`, ContentType: "text/plain", Data: []byte("all good")})

	buf, boundary := encodeForm(t, form)
	read, err := ReadMultipartForm(multipart.NewReader(buf, boundary))
	require.NoError(t, err)

	file, ok := read.GetContent("attachments")
	require.True(t, ok)
	assert.Equal(t, `shift "notes".txt`, file.FileName)
	assert.Equal(t, []byte("all good"), file.Data)

	data, ok := read.GetContent("logs.data")
	require.True(t, ok)
	assert.Equal(t, contentTypeJSON, data.ContentType)

	var back ArrayOfLogsResponse
	require.NoError(t, back.FromMultipart(read, "logs"))
	assert.Equal(t, in, back)
}

func TestParseMultipartForm(t *testing.T) {
	form := NewMultipartForm()
	form.Add(HTTPContent{Name: "title", ContentType: contentTypeText, Data: []byte("Shift summary")})
	form.Add(HTTPContent{Name: "attachments", FileName: "a.bin", ContentType: "application/x-test", Data: []byte{0, 1, 2}})

	buf, boundary := encodeForm(t, form)
	mf, err := multipart.NewReader(buf, boundary).ReadForm(1 << 20)
	require.NoError(t, err)

	parsed, err := ParseMultipartForm(mf)
	require.NoError(t, err)

	title, ok := parsed.GetContent("title")
	require.True(t, ok)
	assert.Equal(t, "Shift summary", string(title.Data))
	assert.Empty(t, title.FileName)

	file, ok := parsed.GetContent("attachments")
	require.True(t, ok)
	assert.Equal(t, "a.bin", file.FileName)
	assert.Equal(t, "application/x-test", file.ContentType)
	assert.Equal(t, []byte{0, 1, 2}, file.Data)
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "", normalizePrefix(""))
	assert.Equal(t, "a.", normalizePrefix("a"))
	assert.Equal(t, "a.b.", normalizePrefix("a.b."))
}

func TestHTTPContentRoundTrip(t *testing.T) {
	c, err := toHTTPContent("s", "plain")
	require.NoError(t, err)
	assert.Equal(t, contentTypeText, c.ContentType)
	var s string
	require.NoError(t, fromHTTPContent(c, &s))
	assert.Equal(t, "plain", s)

	c, err = toHTTPContent("n", int64(42))
	require.NoError(t, err)
	assert.Equal(t, contentTypeJSON, c.ContentType)
	var n int64
	require.NoError(t, fromHTTPContent(c, &n))
	assert.Equal(t, int64(42), n)

	c, err = toHTTPContent("b", []byte{9, 8})
	require.NoError(t, err)
	var b []byte
	require.NoError(t, fromHTTPContent(c, &b))
	assert.Equal(t, []byte{9, 8}, b)

	var bad []Log
	assert.Error(t, fromHTTPContent(HTTPContent{ContentType: contentTypeJSON, Data: []byte("{")}, &bad))
}

func TestMultipartFormAppendKeepsDuplicates(t *testing.T) {
	form := NewMultipartForm()
	form.Append(HTTPContent{Name: "attachments", FileName: "a.txt", Data: []byte("a")})
	form.Append(HTTPContent{Name: "attachments", FileName: "b.txt", Data: []byte("b")})

	first, ok := form.GetContent("attachments")
	require.True(t, ok)
	assert.Equal(t, "a.txt", first.FileName)

	all := form.GetContents("attachments")
	require.Len(t, all, 2)
	assert.Equal(t, "b.txt", all[1].FileName)

	buf, boundary := encodeForm(t, form)
	read, err := ReadMultipartForm(multipart.NewReader(buf, boundary))
	require.NoError(t, err)
	assert.Len(t, read.GetContents("attachments"), 2)
}
