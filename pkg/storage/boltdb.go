package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/solforge/solforge/pkg/registry"
	"github.com/solforge/solforge/pkg/types"
)

var (
	// Bucket names
	bucketEnvironments = []byte("environments")
	bucketMeta         = []byte("meta")

	keyActive = []byte("active")
)

// EnvironmentStore persists environment configs and the active
// selection in a BoltDB file. The registry itself stays in-memory; the
// composition root loads from the store at startup and flushes after
// mutations.
type EnvironmentStore struct {
	db *bolt.DB
}

// NewEnvironmentStore opens (creating if needed) the store under dataDir
func NewEnvironmentStore(dataDir string) (*EnvironmentStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "environments.db")
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketEnvironments, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &EnvironmentStore{db: db}, nil
}

// Close closes the database
func (s *EnvironmentStore) Close() error {
	return s.db.Close()
}

// SaveEnvironment upserts one named environment
func (s *EnvironmentStore) SaveEnvironment(name string, cfg types.EnvironmentConfig) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEnvironments)
		data, err := json.Marshal(cfg)
		if err != nil {
			return err
		}
		return b.Put([]byte(name), data)
	})
}

// DeleteEnvironment removes one named environment
func (s *EnvironmentStore) DeleteEnvironment(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEnvironments).Delete([]byte(name))
	})
}

// ListEnvironments returns every persisted environment keyed by name
func (s *EnvironmentStore) ListEnvironments() (map[string]types.EnvironmentConfig, error) {
	out := make(map[string]types.EnvironmentConfig)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEnvironments)
		return b.ForEach(func(k, v []byte) error {
			var cfg types.EnvironmentConfig
			if err := json.Unmarshal(v, &cfg); err != nil {
				return err
			}
			out[string(k)] = cfg
			return nil
		})
	})
	return out, err
}

// SetActive records the active environment name; empty clears it
func (s *EnvironmentStore) SetActive(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if name == "" {
			return b.Delete(keyActive)
		}
		return b.Put(keyActive, []byte(name))
	})
}

// Active returns the persisted active environment name, empty if none
func (s *EnvironmentStore) Active() (string, error) {
	var name string
	err := s.db.View(func(tx *bolt.Tx) error {
		name = string(tx.Bucket(bucketMeta).Get(keyActive))
		return nil
	})
	return name, err
}

// LoadRegistry builds a registry from the store's contents. An empty
// store yields a registry seeded with the stock environments (and
// persists them).
func (s *EnvironmentStore) LoadRegistry() (*registry.Registry, error) {
	envs, err := s.ListEnvironments()
	if err != nil {
		return nil, fmt.Errorf("failed to list environments: %w", err)
	}

	if len(envs) == 0 {
		reg := registry.New()
		if err := s.FlushRegistry(reg); err != nil {
			return nil, err
		}
		return reg, nil
	}

	reg := registry.NewEmpty()
	for name, cfg := range envs {
		reg.Save(name, cfg)
	}

	active, err := s.Active()
	if err != nil {
		return nil, err
	}
	if active != "" {
		reg.RestoreActive(active)
	}

	return reg, nil
}

// FlushRegistry replaces the store's contents with the registry's
// current snapshot
func (s *EnvironmentStore) FlushRegistry(reg *registry.Registry) error {
	envs := reg.GetAll()

	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketEnvironments); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketEnvironments)
		if err != nil {
			return err
		}
		for name, cfg := range envs {
			data, err := json.Marshal(cfg)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(name), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to flush environments: %w", err)
	}

	active, _, ok := reg.Active()
	if !ok {
		active = ""
	}
	return s.SetActive(active)
}
