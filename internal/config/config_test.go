package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/llm"
)

// isolate runs the test in an empty directory with every SKILLPATH_
// variable cleared, so no stray .env or shell setting leaks in.
func isolate(t *testing.T) {
	t.Helper()
	for _, b := range envBindings {
		t.Setenv(llm.EnvPrefix+b.name, "")
	}
	t.Setenv("SKILLPATH_LLM_PROVIDER", "")
	t.Chdir(t.TempDir())
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Quiz.Size)
	assert.Equal(t, 10, cfg.Quiz.MinPoolSize)
	assert.Equal(t, 70, cfg.Quiz.PassThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	path := writeFile(t, "skillpath.yaml", `
server:
  addr: ":9000"
  request_timeout: 45s
database:
  driver: postgres
  dsn: postgres://file@db/skillpath
quiz:
  size: 8
  min_pool_size: 20
log:
  level: debug
`)
	t.Setenv("SKILLPATH_QUIZ_SIZE", "3")
	t.Setenv("SKILLPATH_DB_DSN", "postgres://env@db/skillpath")
	t.Setenv("SKILLPATH_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr, "file beats default")
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 3, cfg.Quiz.Size, "env beats file")
	assert.Equal(t, 20, cfg.Quiz.MinPoolSize)
	assert.Equal(t, 70, cfg.Quiz.PassThreshold, "default survives")
	assert.Equal(t, "postgres://env@db/skillpath", cfg.Database.DSN)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	// godotenv never overrides a variable that is set, even to "".
	// isolate's Setenv restores it afterwards.
	os.Unsetenv("SKILLPATH_JWT_SECRET")
	require.NoError(t, os.WriteFile(".env", []byte("SKILLPATH_JWT_SECRET=from-dotenv\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Auth.JWTSecret)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
		want string
	}{
		{name: "bad int", env: map[string]string{"SKILLPATH_QUIZ_SIZE": "five"}, want: "SKILLPATH_QUIZ_SIZE"},
		{name: "bad duration", env: map[string]string{"SKILLPATH_REDIS_LOCK_TTL": "soon"}, want: "SKILLPATH_REDIS_LOCK_TTL"},
		{name: "bad yaml", file: "quiz: [", want: "parse config"},
		{name: "unknown driver", env: map[string]string{"SKILLPATH_DB_DRIVER": "mysql"}, want: "database.driver"},
		{name: "postgres without dsn", env: map[string]string{"SKILLPATH_DB_DRIVER": "postgres"}, want: "database.dsn is required"},
		{name: "threshold range", env: map[string]string{"SKILLPATH_QUIZ_PASS_THRESHOLD": "101"}, want: "pass_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, "bad.yaml", tt.file)
			}
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestQuizEngine(t *testing.T) {
	cfg := Default()
	cfg.Quiz = QuizConfig{Size: 4, MinPoolSize: 12, PassThreshold: 80}
	q := cfg.QuizEngine()
	assert.Equal(t, 4, q.QuizSize)
	assert.Equal(t, 12, q.MinPoolSize)
	assert.Equal(t, 80, q.PassThreshold)
}
