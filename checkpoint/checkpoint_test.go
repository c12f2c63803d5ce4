package checkpoint

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cases := map[string]struct {
		config  Config
		wantErr bool
	}{
		"default":         {config: DefaultConfig()},
		"none":            {config: Config{Type: TypeNone}},
		"postgres":        {config: Config{Type: TypePostgres, DSN: "postgres://localhost/peggo"}},
		"postgres no dsn": {config: Config{Type: TypePostgres}, wantErr: true},
		"redis":           {config: Config{Type: TypeRedis, RedisAddr: "localhost:6379"}},
		"redis no addr":   {config: Config{Type: TypeRedis}, wantErr: true},
		"unknown":         {config: Config{Type: "etcd"}, wantErr: true},
	}
	for n, c := range cases {
		t.Run(n, func(t *testing.T) {
			err := c.config.Validate()
			if c.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigOpen(t *testing.T) {
	home := t.TempDir()

	s, err := Config{Type: TypeNone}.Open(context.TODO(), home)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = DefaultConfig().Open(context.TODO(), home)
	require.NoError(t, err)
	db, ok := s.(*LevelDB)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, "data"), db.dir)
	require.NoError(t, s.Close())

	s, err = Config{Type: TypeLevelDB, Path: "cursor"}.Open(context.TODO(), home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cursor"), s.(*LevelDB).dir)
	require.NoError(t, s.Close())

	abs := filepath.Join(t.TempDir(), "abs")
	assert.Equal(t, abs, Config{Type: TypeLevelDB, Path: abs}.dir(home))
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "peggo:checkpoint:1337/0xabc", redisKey("1337/0xabc"))
}
