package attachment

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"bookkeeping-gateway/internal/config"
	"bookkeeping-gateway/internal/domain/entity"
)

var (
	ErrNotFound    = errors.New("attachment not found")
	ErrInvalidName = errors.New("invalid attachment name")
	ErrTooLarge    = errors.New("attachment exceeds maximum size")
)

// Store hands out files waiting in the ready folder and archives them once sent
type Store interface {
	// Load reads a file from the ready folder
	Load(filename string) (*entity.FileUpload, error)

	// MarkUploaded moves a file from the ready folder to the uploaded folder
	MarkUploaded(filename string) error

	// ListReady returns the names of the files waiting in the ready folder
	ListReady() ([]string, error)

	GetReadyPath() string
	GetUploadedPath() string
}

type store struct {
	config *config.AttachmentConfig
	logger *zap.Logger
}

func NewStore(cfg *config.Config, logger *zap.Logger) (Store, error) {
	s := &store{
		config: &cfg.Attachment,
		logger: logger,
	}

	for _, dir := range []string{s.GetReadyPath(), s.GetUploadedPath()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	logger.Info("Attachment store initialized",
		zap.String("ready_folder", s.GetReadyPath()),
		zap.String("uploaded_folder", s.GetUploadedPath()),
	)

	return s, nil
}

func (s *store) GetReadyPath() string {
	return filepath.Join(s.config.BasePath, s.config.ReadyFolder)
}

func (s *store) GetUploadedPath() string {
	return filepath.Join(s.config.BasePath, s.config.UploadedFolder)
}

// checkName rejects anything that is not a plain file name
func checkName(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || filename == "." || filename == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	return nil
}

func (s *store) Load(filename string) (*entity.FileUpload, error) {
	if err := checkName(filename); err != nil {
		return nil, err
	}

	path := filepath.Join(s.GetReadyPath(), filename)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat attachment: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidName, filename)
	}
	if s.config.MaxSize > 0 && info.Size() > s.config.MaxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, filename, info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	s.logger.Info("Attachment loaded",
		zap.String("filename", filename),
		zap.Int("size_bytes", len(content)),
	)

	return &entity.FileUpload{
		Filename:    filename,
		ContentType: detectContentType(filename, content),
		Content:     content,
	}, nil
}

func (s *store) MarkUploaded(filename string) error {
	if err := checkName(filename); err != nil {
		return err
	}

	srcPath := filepath.Join(s.GetReadyPath(), filename)
	dstPath := filepath.Join(s.GetUploadedPath(), filename)

	if err := os.Rename(srcPath, dstPath); err != nil {
		return fmt.Errorf("failed to move attachment to uploaded: %w", err)
	}

	s.logger.Info("Attachment moved to uploaded",
		zap.String("filename", filename),
		zap.String("to", dstPath),
	)
	return nil
}

func (s *store) ListReady() ([]string, error) {
	entries, err := os.ReadDir(s.GetReadyPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read ready folder: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func detectContentType(filename string, content []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(content)
}
