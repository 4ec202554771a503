package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/artistpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestJSONData struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestWriteJSONFile_NewFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	filePath := env.Path("test.json")
	testData := []TestJSONData{
		{ID: 1, Name: "Test 1"},
		{ID: 2, Name: "Test 2"},
	}

	written, err := WriteJSONFile(testData, filePath, true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.True(t, FileExists(filePath))

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)

	var result []TestJSONData
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, testData, result)
}

func TestWriteJSONFile_Indentation(t *testing.T) {
	env := testutil.NewTestEnv(t)
	filePath := env.Path("indent.json")

	_, err := WriteJSONFile(TestJSONData{ID: 1, Name: "R&B <live>"}, filePath, true)
	require.NoError(t, err)

	expected := "{\n  \"id\": 1,\n  \"name\": \"R&B <live>\"\n}\n"
	assert.Equal(t, expected, env.ReadFileString("indent.json"))
}

func TestWriteJSONFile_OverwriteTrue(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("test.json", `[{"id":0,"name":"old"}]`)

	written, err := WriteJSONFile([]TestJSONData{{ID: 1, Name: "new"}}, env.Path("test.json"), true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Contains(t, env.ReadFileString("test.json"), `"new"`)
}

func TestWriteJSONFile_OverwriteFalse(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("test.json", `[{"id":0,"name":"old"}]`)

	written, err := WriteJSONFile([]TestJSONData{{ID: 1, Name: "new"}}, env.Path("test.json"), false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, `[{"id":0,"name":"old"}]`, env.ReadFileString("test.json"))
}

func TestWriteJSONFile_CreateDirectory(t *testing.T) {
	env := testutil.NewTestEnv(t)
	filePath := filepath.Join(env.RootDir(), "nested", "dir", "test.json")

	written, err := WriteJSONFile(TestJSONData{ID: 1, Name: "Nested"}, filePath, true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.True(t, FileExists(filePath))
}

func TestWriteJSONFile_InvalidData(t *testing.T) {
	env := testutil.NewTestEnv(t)
	filePath := env.Path("invalid.json")

	written, err := WriteJSONFile(make(chan int), filePath, true)
	require.Error(t, err)
	assert.False(t, written)
	assert.False(t, FileExists(filePath))
}
