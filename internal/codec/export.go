package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/roach88/researchhub/internal/model"
)

// DefaultExportFile is the file name used when the caller names none.
const DefaultExportFile = "researchhub_export.json"

// Export serializes doc as indented canonical JSON ending in a newline.
// Nil collections are written as empty lists.
func Export(doc model.Document) ([]byte, error) {
	doc = doc.Clone()
	doc.Normalize()

	compact, err := MarshalCanonical(doc)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("export: indent: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// WriteFileAtomic replaces path with data so that readers see either the old
// content or the new content, never a partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
