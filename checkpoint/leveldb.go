package checkpoint

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	dbm "github.com/cometbft/cometbft-db"
)

// levelDBName is the name of the database directory created under the data directory
const levelDBName = "checkpoint"

// LevelDB keeps checkpoints in a local key-value database.
// Heights are stored as 8-byte big-endian values.
type LevelDB struct {
	mu  sync.Mutex
	dir string
	db  dbm.DB
}

var _ Store = (*LevelDB)(nil)

// OpenLevelDB opens (or creates) the checkpoint database under dir
func OpenLevelDB(dir string) (*LevelDB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}
	db, err := dbm.NewGoLevelDB(levelDBName, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database in %s: %w", dir, err)
	}
	return &LevelDB{dir: dir, db: db}, nil
}

// NewLevelDB returns a store backed by the given database
func NewLevelDB(db dbm.DB) *LevelDB {
	return &LevelDB{db: db}
}

func (s *LevelDB) Load(_ context.Context, key string) (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key)
}

func (s *LevelDB) get(key string) (uint64, bool, error) {
	bz, err := s.db.Get([]byte(key))
	if err != nil {
		return 0, false, fmt.Errorf("failed to read checkpoint %s: %w", key, err)
	} else if bz == nil {
		return 0, false, nil
	} else if len(bz) != 8 {
		return 0, false, fmt.Errorf("malformed checkpoint %s: length=%d", key, len(bz))
	}
	return binary.BigEndian.Uint64(bz), true, nil
}

func (s *LevelDB) Save(_ context.Context, key string, height uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, found, err := s.get(key)
	if err != nil {
		return err
	}
	if found {
		if cur > height {
			return fmt.Errorf("%w: key=%s, stored=%d, given=%d", ErrRegression, key, cur, height)
		} else if cur == height {
			return nil
		}
	}

	var bz [8]byte
	binary.BigEndian.PutUint64(bz[:], height)
	if err := s.db.SetSync([]byte(key), bz[:]); err != nil {
		return fmt.Errorf("failed to write checkpoint %s: %w", key, err)
	}
	return nil
}

func (s *LevelDB) Close() error {
	return s.db.Close()
}
