package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ccwc/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = "foo bar\nbaz\n"

func sampleFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.txt")
	err := os.WriteFile(path, []byte(sampleText), 0644)
	require.NoError(t, err)

	return path
}

func runCLI(args []string, stdin string) (int, string, string) {
	var stdout, stderr bytes.Buffer

	code := Run(args, strings.NewReader(stdin), &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    types.Set
		path        string
		expectError bool
		errorMatch  string
	}{
		{
			name:     "no flags",
			args:     nil,
			expected: types.NewSet(),
		},
		{
			name:     "short flags",
			args:     []string{"-c", "-l", "file.txt"},
			expected: types.NewSet(types.Bytes, types.Lines),
			path:     "file.txt",
		},
		{
			name:     "combined short flags",
			args:     []string{"-wm"},
			expected: types.NewSet(types.Words, types.Chars),
		},
		{
			name:     "long flags after the path",
			args:     []string{"file.txt", "--chars", "--words"},
			expected: types.NewSet(types.Chars, types.Words),
			path:     "file.txt",
		},
		{
			name:        "unknown flag",
			args:        []string{"-x"},
			expectError: true,
			errorMatch:  "unknown shorthand flag",
		},
		{
			name:        "too many files",
			args:        []string{"a.txt", "b.txt"},
			expectError: true,
			errorMatch:  "at most one file",
		},
		{
			name:        "bad format",
			args:        []string{"--format", "xml"},
			expectError: true,
			errorMatch:  "unknown format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseArgs(tt.args)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMatch)

				var usageErr *UsageError
				assert.ErrorAs(t, err, &usageErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, opts.Requested)
			assert.Equal(t, tt.path, opts.Path)
		})
	}
}

func TestRun(t *testing.T) {
	path := sampleFile(t)

	tests := []struct {
		name     string
		args     []string
		stdin    string
		expected string
	}{
		{name: "default bundle", args: []string{path}, expected: "2 3 12 sample.txt\n"},
		{name: "bytes", args: []string{"-c", path}, expected: "12 sample.txt\n"},
		{name: "chars", args: []string{"-m", path}, expected: "12 sample.txt\n"},
		{name: "lines", args: []string{"--lines", path}, expected: "2 sample.txt\n"},
		{name: "words", args: []string{"-w", path}, expected: "3 sample.txt\n"},
		{name: "flag order does not matter", args: []string{"-m", "-c", "-w", "-l", path}, expected: "2 3 12 12 sample.txt\n"},
		{name: "empty stdin", args: nil, stdin: "", expected: "0 0 0 \n"},
		{name: "stdin content", args: []string{"-l"}, stdin: sampleText, expected: "2 \n"},
		{name: "json output", args: []string{"--format", "json", path}, expected: `{"name":"sample.txt","lines":2,"words":3,"bytes":12}` + "\n"},
		{name: "csv output", args: []string{"--format=csv", "-c", path}, expected: "measurement,count\nbytes,12\nname,sample.txt\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args, tt.stdin)

			assert.Equal(t, ExitOK, code)
			assert.Equal(t, tt.expected, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRunFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.txt")

		code, stdout, stderr := runCLI([]string{missing}, "")

		assert.Equal(t, ExitFailure, code)
		assert.Empty(t, stdout, "no partial output on failure")
		assert.Contains(t, stderr, "no such file")
		assert.Contains(t, stderr, "nope.txt")
	})

	t.Run("invalid utf-8 on stdin", func(t *testing.T) {
		code, stdout, stderr := runCLI(nil, "\xff\xfe")

		assert.Equal(t, ExitFailure, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "not valid UTF-8")
	})

	t.Run("usage error", func(t *testing.T) {
		code, stdout, stderr := runCLI([]string{"--nope"}, "")

		assert.Equal(t, ExitUsage, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "invalid arguments")
		assert.Contains(t, stderr, "--help")
	})

	t.Run("bad config", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("[measure]\ndefault = [\"pages\"]\n"), 0644))

		code, stdout, stderr := runCLI([]string{"--config", cfgPath}, "text")

		assert.Equal(t, ExitFailure, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "configuration error")
	})
}

func TestRunWithConfig(t *testing.T) {
	path := sampleFile(t)

	cfgPath := filepath.Join(t.TempDir(), "ccwc.toml")
	err := os.WriteFile(cfgPath, []byte("[measure]\ndefault = [\"chars\"]\n\n[output]\nformat = \"json\"\n"), 0644)
	require.NoError(t, err)

	t.Run("config default applies without flags", func(t *testing.T) {
		code, stdout, _ := runCLI([]string{"--config", cfgPath, path}, "")

		assert.Equal(t, ExitOK, code)
		assert.Equal(t, `{"name":"sample.txt","chars":12}`+"\n", stdout)
	})

	t.Run("explicit flags win over config default", func(t *testing.T) {
		code, stdout, _ := runCLI([]string{"--config", cfgPath, "--format", "text", "-l", path}, "")

		assert.Equal(t, ExitOK, code)
		assert.Equal(t, "2 sample.txt\n", stdout)
	})
}

func TestRunHelpAndVersion(t *testing.T) {
	code, stdout, _ := runCLI([]string{"--version"}, "")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "ccwc 1.0\n", stdout)

	code, stdout, _ = runCLI([]string{"-h"}, "")
	assert.Equal(t, ExitOK, code)

	for _, flag := range []string{"--bytes", "--chars", "--lines", "--words", "--config file"} {
		assert.Contains(t, stdout, flag)
	}
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	path := sampleFile(t)

	code, stdout, stderr := runCLI([]string{"-v", path}, "")

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "2 3 12 sample.txt\n", stdout)
	assert.Contains(t, stderr, "Input acquired")
	assert.Contains(t, stderr, "component=input")
}
