package attachment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/config"
)

func newTestStore(t *testing.T, maxSize int64) Store {
	t.Helper()
	cfg := &config.Config{Attachment: config.AttachmentConfig{
		BasePath:       t.TempDir(),
		ReadyFolder:    "ready",
		UploadedFolder: "uploaded",
		MaxSize:        maxSize,
	}}
	s, err := NewStore(cfg, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestStoreLoadAndMarkUploaded(t *testing.T) {
	s := newTestStore(t, 0)
	require.NoError(t, os.WriteFile(filepath.Join(s.GetReadyPath(), "notes.txt"), []byte("shift notes"), 0644))

	names, err := s.ListReady()
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, names)

	file, err := s.Load("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", file.Filename)
	assert.Equal(t, []byte("shift notes"), file.Content)
	assert.Contains(t, file.ContentType, "text/plain")

	require.NoError(t, s.MarkUploaded("notes.txt"))
	_, err = os.Stat(filepath.Join(s.GetUploadedPath(), "notes.txt"))
	assert.NoError(t, err)

	names, err = s.ListReady()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStoreLoadErrors(t *testing.T) {
	s := newTestStore(t, 4)
	require.NoError(t, os.WriteFile(filepath.Join(s.GetReadyPath(), "big.bin"), []byte("12345"), 0644))

	_, err := s.Load("missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Load("../secret")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = s.Load("")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = s.Load("big.bin")
	assert.ErrorIs(t, err, ErrTooLarge)

	assert.ErrorIs(t, s.MarkUploaded("a/b"), ErrInvalidName)
}
