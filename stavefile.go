//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"f":    Test.Fuzz,
	"l":    Lint.Default,
	"c":    Check,
	"i":    Install,
	"fmt":  Lint.Fmt,
	"self": Smoke,
}

const (
	binaryName = "htmlcheck"
	binaryPath = "bin/" + binaryName
	mainPkg    = "./cmd/" + binaryName
)

// releasePlatforms are the GOOS/GOARCH pairs CI.Cross builds.
var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64",
}

// fuzzTargets lists the fuzz tests run by Test.Fuzz, by package.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/validate", "FuzzValidate"},
	{"./pkg/parser/goldmark", "FuzzMask"},
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles the htmlcheck binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir(binaryPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binaryPath + " is up to date")
		return nil
	}
	fmt.Println("Building " + binaryName + "...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binaryPath, mainPkg)
}

// Smoke builds the binary and lists its rules and elements, then checks a
// known-bad document from stdin and expects exit code 1.
func Smoke() error {
	st.Deps(Build)
	fmt.Println("Running smoke checks...")
	if err := sh.RunV(binaryPath, "rules", "--color", "never"); err != nil {
		return err
	}
	if err := sh.Run(binaryPath, "elements", "--builtin"); err != nil {
		return err
	}

	check := exec.Command(binaryPath, "lint", "--color", "never", "-") //nolint:gosec // args are constant
	check.Stdin = strings.NewReader("<div>\n  <span></div>\n")
	check.Stdout = os.Stdout
	check.Stderr = os.Stderr
	err := check.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		return fmt.Errorf("expected exit code 1 for a mismatched document, got %v", err)
	}
	fmt.Println("✓ Smoke checks passed")
	return nil
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	for _, file := range []string{"coverage.out", "coverage.html", "cpu.out", "mem.out", "validate.test"} {
		if err := sh.Rm(file); err != nil {
			return err
		}
	}
	return nil
}

// Install installs htmlcheck to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing " + binaryName + "...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall removes htmlcheck from $GOBIN or $GOPATH/bin.
func Uninstall() error {
	fmt.Println("Uninstalling " + binaryName + "...")
	binPath, err := findInstalledBinary(binaryName)
	if err != nil {
		return err
	}
	if err := os.Remove(binPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println(binaryName + " is not installed")
			return nil
		}
		return fmt.Errorf("remove binary: %w", err)
	}
	fmt.Printf("Removed %s\n", binPath)
	return nil
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage generates a test coverage report and opens it.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("open", "coverage.html")
}

// Default runs all tests with the race detector and writes coverage.out.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose runs all tests and prints every test name.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose")
}

// Fuzz runs each fuzz target for FUZZ_TIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	for _, ft := range fuzzTargets {
		fmt.Printf("Fuzzing %s in %s for %s...\n", ft.name, ft.pkg, fuzzTime)
		if err := sh.RunV("go", "test", ft.pkg,
			"-run", "^$",
			"-fuzz", "^"+ft.name+"$",
			"-fuzztime", fuzzTime,
		); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Gate runs all CI checks in idiomatic Go order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Smoke,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy fails when 'go mod tidy' would change go.mod or go.sum.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	before := readModuleFiles()
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	if readModuleFiles() != before {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'; commit the result")
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// Cross builds every release platform with cgo disabled.
func (CI) Cross() error {
	fmt.Println("Cross-compiling for release platforms...")
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	fmt.Println("✓ All platforms build")
	return nil
}

// Default runs Go benchmarks.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-bench=.", "-benchmem",
		"./...",
	)
}

// Profile writes CPU and memory profiles of the validator benchmark.
func (Bench) Profile() error {
	fmt.Println("Profiling validator...")
	return sh.RunV("go", "test", "./pkg/validate",
		"-run", "^$",
		"-bench", "^BenchmarkValidate$",
		"-benchmem",
		"-cpuprofile", "cpu.out",
		"-memprofile", "mem.out",
	)
}

// gotestsum runs every package's tests with the race detector, using the
// given gotestsum format. Extra go test flags follow the package pattern.
func gotestsum(format string, extra ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-race", "-p", procs, "-parallel", procs, "./..."}
	return sh.RunV("go", append(args, extra...)...)
}

// readModuleFiles returns go.mod and go.sum concatenated; missing files
// read as empty.
func readModuleFiles() string {
	var sb strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		content, _ := os.ReadFile(name)
		sb.Write(content)
		sb.WriteByte(0)
	}
	return sb.String()
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// findInstalledBinary returns the path where go install would place the binary.
func findInstalledBinary(name string) (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, name), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", name), nil
}
