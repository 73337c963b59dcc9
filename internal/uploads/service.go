package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPath is the URL prefix under which stored files are served.
const PublicPath = "/uploads"

// Service persists multipart uploads to a local directory and hands back the
// relative URL paths stored on listings.
type Service struct {
	Dir string
}

// EnsureDir creates the uploads directory if absent. Called once at startup.
func (s *Service) EnsureDir() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// GenerateName builds a collision-resistant filename from the current time
// plus a random component, preserving the original extension.
func GenerateName(original string) string {
	random := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), random, filepath.Ext(original))
}

// Save writes one uploaded file under a generated name and returns its
// relative URL path, e.g. "/uploads/1756709400123-9f3a2b1c.jpg".
func (s *Service) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	name := GenerateName(fh.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return PublicPath + "/" + name, nil
}

// SaveAll saves files in order and returns their paths in the same order.
func (s *Service) SaveAll(fhs []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		p, err := s.Save(fh)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
