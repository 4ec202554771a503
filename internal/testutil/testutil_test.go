package testutil

import (
	"path/filepath"
	"testing"

	"github.com/lepinkainen/artistpulse/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvPath(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("notes", "Drake.md")
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join(env.RootDir(), "notes", "Drake.md"), path)

	// an absolute path inside the sandbox resolves to itself
	assert.Equal(t, path, env.Path(path))
}

func TestTestEnvWriteRead(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("nested/dir/out.json", "[]\n")

	env.RequireFileExists("nested/dir/out.json")
	assert.Equal(t, "[]\n", env.ReadFileString("nested/dir/out.json"))
	assert.Equal(t, []byte("[]\n"), env.ReadFile(env.Path("nested", "dir", "out.json")))
	env.AssertFileContains("nested/dir/out.json", "[]")
}

func TestTestEnvMkdirAndExists(t *testing.T) {
	env := NewTestEnv(t)

	assert.False(t, env.FileExists("covers"))
	env.RequireFileNotExists("covers")

	env.MkdirAll("covers/small")
	assert.DirExists(t, env.Path("covers", "small"))
	assert.True(t, env.FileExists("covers"))
}

func TestGoldenHelperAssertGolden(t *testing.T) {
	t.Setenv("UPDATE_GOLDEN", "")
	env := NewTestEnv(t)
	env.WriteFileString("golden/summary.txt", "1 artists collected")

	golden := NewGoldenHelper(t, env.Path("golden"))
	golden.AssertGolden("summary.txt", []byte("1 artists collected"))
	golden.AssertGoldenString("summary.txt", "1 artists collected")
}

func TestGoldenHelperAssertGoldenJSON(t *testing.T) {
	t.Setenv("UPDATE_GOLDEN", "")
	env := NewTestEnv(t)
	env.WriteFileString("golden/record.json", `{"artist":"Drake","catalog":{}}`)

	golden := NewGoldenHelper(t, env.Path("golden"))
	golden.AssertGoldenJSON("record.json", []byte("{\n  \"catalog\": {},\n  \"artist\": \"Drake\"\n}\n"))
}

func TestGoldenHelperUpdateMode(t *testing.T) {
	t.Setenv("UPDATE_GOLDEN", "true")
	env := NewTestEnv(t)

	golden := NewGoldenHelper(t, env.Path("golden"))
	require.True(t, golden.IsUpdateMode())
	assert.False(t, golden.Exists("new.json"))

	golden.AssertGoldenJSON("new.json", []byte(`[]`))

	assert.True(t, golden.Exists("new.json"))
	assert.Equal(t, []byte(`[]`), golden.MustReadGolden("new.json"))
}

func TestGoldenHelperPath(t *testing.T) {
	t.Setenv("UPDATE_GOLDEN", "")
	golden := NewGoldenHelper(t, "testdata")

	assert.Equal(t, filepath.Join("testdata", "a.json"), golden.GoldenPath("a.json"))
	assert.False(t, golden.IsUpdateMode())
}

// Config management tests

func TestResetConfig(t *testing.T) {
	t.Run("inner", func(t *testing.T) {
		ResetConfig(t)

		assert.Equal(t, config.DefaultOutput, viper.GetString("output"))
		viper.Set("output", "elsewhere.json")
	})

	assert.False(t, viper.IsSet("output"))
}

func TestSetTestConfig(t *testing.T) {
	t.Run("inner", func(t *testing.T) {
		SetTestConfig(t)

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"Drake"}, cfg.Artists)
		assert.Equal(t, "test-youtube-key", cfg.YouTube.APIKey)
		assert.Zero(t, cfg.PaceMax)
		assert.False(t, cfg.Isolate)
	})

	assert.False(t, viper.IsSet("youtube.api_key"))
}

func TestSetTestConfigWithOptions(t *testing.T) {
	SetTestConfigWithOptions(t,
		WithArtists("Drake", "Future"),
		WithIsolate(true),
		WithPacing(),
	)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Drake", "Future"}, cfg.Artists)
	assert.True(t, cfg.Isolate)
	assert.Equal(t, config.DefaultPaceMax, cfg.PaceMax)
}

func TestSetViperValue(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Run("inner", func(t *testing.T) {
		SetViperValue(t, "test.key", "test-value")
		assert.Equal(t, "test-value", viper.GetString("test.key"))
	})
}

func TestSetupTestCache(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	env := NewTestEnv(t)
	dbPath := SetupTestCache(t, env)

	assert.DirExists(t, filepath.Dir(dbPath))
	assert.Equal(t, dbPath, viper.GetString("cache.dbfile"))
	assert.True(t, viper.GetBool("cache.enabled"))
	assert.Equal(t, "24h", viper.GetString("cache.ttl"))
}

func TestSetupOutput(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	env := NewTestEnv(t)
	out := SetupOutput(t, env)

	assert.Equal(t, out, viper.GetString("output"))
	assert.Equal(t, env.Path("markdown"), viper.GetString("markdown.dir"))
}
