package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func testContext() *Context {
	return &Context{Debug: false, Logger: zap.NewNop()}
}

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "recase_test_*.json")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

func TestRun_SnakeToCamel(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	input := writeTempJSON(t, `{"first_name": "John", "is_active": true, "sort_order": 3}`)

	tmpOutput, err := os.CreateTemp("", "recase_out_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = input
	CLI.Output = tmpOutput.Name()
	CLI.Direction = "camel"
	CLI.MaxDepth = 1000

	err = run(testContext())
	require.NoError(t, err)

	out, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)
	assert.JSONEq(t, `{"firstName":"John","isActive":true,"sortOrder":3}`, string(out))
}

func TestRun_CamelToSnake(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	input := writeTempJSON(t, `{"firstName": "John", "profile": {"emailAddress": "j@example.com"}}`)

	tmpOutput, err := os.CreateTemp("", "recase_out_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = input
	CLI.Output = tmpOutput.Name()
	CLI.Direction = "snake"
	CLI.MaxDepth = 1000

	err = run(testContext())
	require.NoError(t, err)

	out, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_name":"John","profile":{"email_address":"j@example.com"}}`, string(out))
}

func TestRun_ProjectionMode(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpOutput, err := os.CreateTemp("", "recase_out_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	// Projection mode never reads input
	CLI.Projection = "firstName, createdAt"
	CLI.Output = tmpOutput.Name()
	CLI.MaxDepth = 1000

	err = run(testContext())
	require.NoError(t, err)

	out, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_name":true,"created_at":true}`, string(out))
}

func TestRun_CollisionFailsWithoutLenient(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	input := writeTempJSON(t, `{"user_id": 1, "userId": 2}`)

	CLI.Input = input
	CLI.Direction = "camel"
	CLI.MaxDepth = 1000

	err := run(testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "userId")
}

func TestRun_CollisionSucceedsWithLenient(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	input := writeTempJSON(t, `{"user_id": 1, "userId": 2}`)

	tmpOutput, err := os.CreateTemp("", "recase_out_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = input
	CLI.Output = tmpOutput.Name()
	CLI.Direction = "camel"
	CLI.MaxDepth = 1000
	CLI.Lenient = true

	err = run(testContext())
	require.NoError(t, err)

	out, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)
	// "user_id" sorts after "userId", so its value wins deterministically.
	assert.JSONEq(t, `{"userId":1}`, string(out))
}

func TestRun_MaxDepthOverride(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	input := writeTempJSON(t, `{"a": {"b": {"c": {"d": 1}}}}`)

	CLI.Input = input
	CLI.Direction = "camel"
	CLI.MaxDepth = 2

	err := run(testContext())
	assert.Error(t, err)
}

func TestRun_MemoryCacheRoundTrip(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	configFile := writeTempJSON(t, "cache:\n  type: memory\n")
	input := writeTempJSON(t, `{"first_name": "Ann"}`)

	tmpOutput, err := os.CreateTemp("", "recase_out_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = input
	CLI.Output = tmpOutput.Name()
	CLI.Direction = "camel"
	CLI.Config = configFile
	CLI.MaxDepth = 1000

	err = run(testContext())
	require.NoError(t, err)

	out, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)
	assert.JSONEq(t, `{"firstName":"Ann"}`, string(out))
}

func TestRun_SampleFixtures(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	expected, err := os.ReadFile("testdata/samples/user_camel.json")
	require.NoError(t, err)

	tmpOutput, err := os.CreateTemp("", "recase_out_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = "testdata/samples/user_snake.json"
	CLI.Output = tmpOutput.Name()
	CLI.Direction = "camel"
	CLI.MaxDepth = 1000

	err = run(testContext())
	require.NoError(t, err)

	out, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)
	assert.JSONEq(t, string(expected), string(out))
}

func TestReadInput_FromFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempJSON(t, `{"a": 1}`)

	raw, err := readInput()
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, raw)
}

func TestReadInput_FromStdin(t *testing.T) {
	// Save original CLI state and stdin
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()
	CLI.Input = ""

	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(`{"piped": true}`)
	}()

	os.Stdin = r
	defer func() { _ = r.Close() }()

	raw, err := readInput()
	require.NoError(t, err)
	assert.Equal(t, `{"piped": true}`, raw)
}

func TestReadInput_EmptyFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempJSON(t, "")

	_, err := readInput()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadInput_NonExistentFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = "/non/existent/file.json"

	_, err := readInput()
	assert.Error(t, err)
}

func TestWriteOutput_ToFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "recase_write_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_ = tmpFile.Close()

	CLI.Output = tmpFile.Name()

	err = writeOutput(`{"firstName":"Ann"}` + "\n")
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile.Name())
	require.NoError(t, err)
	assert.Equal(t, `{"firstName":"Ann"}`+"\n", string(content))
}

func TestWriteOutput_FileError(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Output = "/non/existent/dir/output.json"

	err := writeOutput("{}")
	assert.Error(t, err)
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single field", "firstName", []string{"firstName"}},
		{"multiple fields", "firstName,lastName", []string{"firstName", "lastName"}},
		{"spaces trimmed", " firstName , lastName ", []string{"firstName", "lastName"}},
		{"empty segments dropped", "a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitFields(tt.input))
		})
	}
}
