package storage

import (
	"context"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores every key as a file under a base directory.
type Diskv struct {
	d *diskv.Diskv
}

func NewDiskv(basePath string) *Diskv {
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (s *Diskv) Read(_ context.Context, key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (s *Diskv) Write(_ context.Context, key string, value []byte) error {
	return s.d.Write(key, value)
}
