package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	// Create a temporary directory for test files
	tempDir, err := os.MkdirTemp("", "recase-test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Create a test JSON file
	jsonContent := `{
		"first_name": "John",
		"last_name": "Doe",
		"email_address": "john.doe@example.com",
		"address": {
			"street_name": "123 Main St",
			"postal_code": "12345"
		},
		"phone_numbers": [
			{
				"phone_type": "home",
				"phone_number": "555-1234"
			},
			{
				"phone_type": "work",
				"phone_number": "555-5678"
			}
		],
		"is_active": true
	}`
	jsonFile := filepath.Join(tempDir, "test.json")
	err = os.WriteFile(jsonFile, []byte(jsonContent), 0644)
	require.NoError(t, err)

	// Define output file path
	outputFile := filepath.Join(tempDir, "output.json")

	// Run the CLI command
	cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile, "-d", "camel")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	// Read the converted output file
	converted, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	out := string(converted)
	assert.Contains(t, out, `"firstName":"John"`)
	assert.Contains(t, out, `"lastName":"Doe"`)
	assert.Contains(t, out, `"emailAddress":"john.doe@example.com"`)
	assert.Contains(t, out, `"streetName":"123 Main St"`)
	assert.Contains(t, out, `"postalCode":"12345"`)
	assert.Contains(t, out, `"phoneType":"home"`)
	assert.Contains(t, out, `"isActive":true`)
	assert.NotContains(t, out, "first_name")
	assert.NotContains(t, out, "phone_numbers")
}

// TestCLI_StdinStdout tests the CLI with stdin input and stdout output
func TestCLI_StdinStdout(t *testing.T) {
	jsonContent := `{"first_name": "Jane", "sort_order": 25, "is_active": true}`

	// Run the CLI command with stdin input
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	// Verify the output
	output := stdout.String()
	assert.Contains(t, output, `"firstName":"Jane"`)
	assert.Contains(t, output, `"sortOrder":25`)
	assert.Contains(t, output, `"isActive":true`)
}

// TestCLI_SnakeDirection tests converting camelCase keys back to snake_case
func TestCLI_SnakeDirection(t *testing.T) {
	jsonContent := `{"firstName": "Jane", "profile": {"emailAddress": "jane@example.com"}}`

	cmd := exec.Command("go", "run", "../../main.go", "-d", "snake")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, `"first_name":"Jane"`)
	assert.Contains(t, output, `"email_address":"jane@example.com"`)
	assert.NotContains(t, output, "firstName")
}

// TestCLI_ArrayInput tests the CLI with a JSON array input
func TestCLI_ArrayInput(t *testing.T) {
	jsonContent := `[
		{"case_number": "C1", "sort_order": 1},
		{"case_number": "C2", "sort_order": 2},
		{"case_number": "C3", "sort_order": 3}
	]`

	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, `"caseNumber":"C1"`)
	assert.Contains(t, output, `"sortOrder":3`)
	assert.NotContains(t, output, "case_number")
}

// TestCLI_Projection tests the projection flag
func TestCLI_Projection(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-p", "firstName,createdAt")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	output := stdout.String()
	assert.Contains(t, output, `"first_name":true`)
	assert.Contains(t, output, `"created_at":true`)
}

// TestCLI_Indent tests pretty-printed output
func TestCLI_Indent(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--indent", "2")
	cmd.Stdin = strings.NewReader(`{"first_name": "Jane"}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"firstName\": \"Jane\"\n}\n", stdout.String())
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	jsonContent := `{"first_name": "Invalid JSON, "age": 30}`

	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with invalid JSON")
	assert.Contains(t, stderr.String(), "JSON parsing error")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader("")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr.String(), "empty")
}

// TestCLI_Collision tests that converging keys fail without --lenient
func TestCLI_Collision(t *testing.T) {
	jsonContent := `{"user_id": 1, "userId": 2}`

	cmd := exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail on key collision")
	assert.Contains(t, stderr.String(), "userId")

	// With --lenient the same input converts
	cmd = exec.Command("go", "run", "../../main.go", "--lenient")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err = cmd.Run()
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `"userId":1`)
}

// TestCLI_GenID tests the id helper
func TestCLI_GenID(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--gen-id")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	id := strings.TrimSpace(string(output))
	assert.True(t, strings.HasPrefix(id, "c"), "id %q should start with 'c'", id)
	assert.GreaterOrEqual(t, len(id), 20)
}

// TestCLI_Slug tests the slug helper
func TestCLI_Slug(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--slug", "Hello World")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Equal(t, "hello-world", strings.TrimSpace(string(output)))
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-v")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "recase version")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "-i, --input")
	assert.Contains(t, helpOutput, "-o, --output")
	assert.Contains(t, helpOutput, "-d, --direction")
	assert.Contains(t, helpOutput, "-p, --projection")
	assert.Contains(t, helpOutput, "--lenient")
}
