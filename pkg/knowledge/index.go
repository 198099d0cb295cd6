package knowledge

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"frontdesk/pkg/logx"
)

//go:embed data/*.json
var defaultData embed.FS

// Index is an immutable snapshot of the knowledge base. Build it once at
// startup; concurrent searches need no locking.
type Index struct {
	apps     appsFile
	services servicesFile
	blog     blogFile
	company  companyFile
	logger   *logx.Logger
}

// NewIndex builds an index from the embedded default data.
func NewIndex() (*Index, error) {
	return newIndex(func(name string) ([]byte, error) {
		return defaultData.ReadFile("data/" + name)
	})
}

// NewIndexFromDir builds an index from JSON files in dir. Files missing from
// the directory fall back to the embedded defaults.
func NewIndexFromDir(dir string) (*Index, error) {
	return newIndex(func(name string) ([]byte, error) {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return raw, nil
		}
		if os.IsNotExist(err) {
			return defaultData.ReadFile("data/" + name)
		}
		return nil, err
	})
}

func newIndex(read func(name string) ([]byte, error)) (*Index, error) {
	idx := &Index{logger: logx.NewLogger("knowledge")}

	files := []struct {
		name string
		dest any
	}{
		{"apps.json", &idx.apps},
		{"services.json", &idx.services},
		{"blog_index.json", &idx.blog},
		{"company.json", &idx.company},
	}
	for _, f := range files {
		raw, err := read(f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(raw, f.dest); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.name, err)
		}
	}

	idx.logger.Info("knowledge index loaded: %d apps, %d services, %d posts",
		len(idx.apps.Apps), len(idx.services.Services), len(idx.blog.Posts))
	return idx, nil
}
