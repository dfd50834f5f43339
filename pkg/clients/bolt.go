package clients

import (
	"os"
	"path/filepath"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"go.etcd.io/bbolt"
)

// NewBoltDB открывает файл BoltDB по пути из конфигурации, создавая директорию при необходимости.
func NewBoltDB(cfg *cfg.StorageCfg) (*bbolt.DB, error) {
	path := filepath.Clean(cfg.BoltPath)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
