package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlcheck/internal/cli"
	"github.com/yaklabco/htmlcheck/pkg/lint"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2026-01-01",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	require.NotNil(t, cmd)
	assert.Equal(t, "htmlcheck", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"lint", "rules", "elements", "init", "config", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %q", name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestRootCommand_CheckAlias(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	subCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)
	assert.Equal(t, "lint", subCmd.Name())
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	expectedFlags := []string{
		"format",
		"jobs",
		"report-dir",
		"source-url",
		"no-backup",
		"no-markdown",
		"flavor",
		"enable",
		"disable",
		"ignore",
		"extensions",
		"quiet",
		"no-context",
		"show-unknown",
		"compact",
		"per-file",
		"rule-format",
		"summary-order",
		"sort",
		"stdin-kind",
	}

	for _, name := range expectedFlags {
		assert.NotNil(t, lintCmd.Flags().Lookup(name), "flag %q", name)
	}

	assert.Equal(t, "combined", lintCmd.Flags().Lookup("rule-format").DefValue)
	assert.Equal(t, "rules", lintCmd.Flags().Lookup("summary-order").DefValue)
	assert.Equal(t, "count", lintCmd.Flags().Lookup("sort").DefValue)
	assert.Contains(t, lintCmd.Flags().Lookup("format").Usage, "html")
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestLintCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	assert.NoError(t, lintCmd.Args(lintCmd, []string{"index.html", "-", "site/"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
	assert.Contains(t, out.String(), "2026-01-01")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"lint", "--help", "--color", "never"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "htmlcheck lint [paths...]")
	assert.Contains(t, help, "--report-dir string")
	assert.Contains(t, help, "-q, --quiet")
	assert.Contains(t, help, "Global Flags:")
	assert.Contains(t, help, "(default combined)")
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"lint", "--no-such-flag"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitUsageError, cli.ExitCode(err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"issues", cli.ErrIssuesFound, cli.ExitIssues},
		{"wrapped issues", fmt.Errorf("run: %w", cli.ErrIssuesFound), cli.ExitIssues},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrUsage), cli.ExitUsageError},
		{"config", fmt.Errorf("%w: parse yaml", cli.ErrConfig), cli.ExitUsageError},
		{"config wrapping missing file", fmt.Errorf("%w: %w", cli.ErrConfig, fs.ErrNotExist), cli.ExitUsageError},
		{"io", fmt.Errorf("%w: 1 of 2 files", cli.ErrIO), cli.ExitIOError},
		{"file not found", fmt.Errorf("%w: a.html", lint.ErrFileNotFound), cli.ExitIOError},
		{"permission", lint.ErrPermissionDenied, cli.ExitIOError},
		{"report write", lint.ErrWriteFailure, cli.ExitIOError},
		{"missing path", fmt.Errorf("stat nope: %w", fs.ErrNotExist), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
