package database

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	tests := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "native dsn untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/hospital?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/hospital?parseTime=true",
		},
		{
			name: "url with defaults",
			in:   "mysql://root:pw@127.0.0.1:3306/hospital",
			want: "root:pw@tcp(127.0.0.1:3306)/hospital?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc params and overrides",
			in:   "jdbc:mysql://db:3306/hospital?useSSL=false&serverTimezone=UTC&characterEncoding=utf8&user=x",
			user: "app", pass: "secret",
			want: "app:secret@tcp(db:3306)/hospital?charset=utf8&loc=UTC&parseTime=true&tls=false",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGorm_SQLite(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1, LogLevel: "silent"})
	require.NoError(t, err)
	defer Close(db)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestNewGorm_SQLiteSingleConnection(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          "file:" + filepath.Join(t.TempDir(), "h.db") + "?_pragma=busy_timeout(5000)",
		MaxOpenConns: 20,
		MaxIdleConns: 10,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	defer Close(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, db.Exec("CREATE TABLE n (v INTEGER)").Error)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.Exec("INSERT INTO n (v) VALUES (?)", i).Error
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	var n int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM n").Scan(&n).Error)
	assert.Equal(t, int64(16), n)
}
