package runner

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietOpts keeps subprocess output out of the test log
func quietOpts() *Options {
	var buf bytes.Buffer
	return &Options{Stdout: &buf, Stderr: &buf}
}

func TestDirectiveIsChdir(t *testing.T) {
	assert.True(t, Directive("cd /opt/yay").IsChdir())
	assert.False(t, Directive("echo cd").IsChdir())
	assert.False(t, Directive("cdparanoia -B").IsChdir())
}

func TestDirectiveChdirTarget(t *testing.T) {
	t.Setenv("HOME", "/home/testuser")

	assert.Equal(t, "/opt/yay", Directive("cd /opt/yay").ChdirTarget())
	assert.Equal(t, "/home/testuser/.venv", Directive("cd ~/.venv").ChdirTarget())
}

func TestRunExecutesInOrder(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "order.txt")

	r := New()
	err := r.Run([]Directive{
		Directive(fmt.Sprintf("echo first >> %s", out)),
		Directive(fmt.Sprintf("echo second >> %s", out)),
		Directive(fmt.Sprintf("echo third >> %s", out)),
	}, nil, quietOpts())

	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nthird\n", string(data))
}

func TestRunFailureAbortsRemainingDirectives(t *testing.T) {
	dir := t.TempDir()
	before := filepath.Join(dir, "before")
	after := filepath.Join(dir, "after")

	r := New()
	err := r.Run([]Directive{
		Directive("touch " + before),
		Directive("exit 1"),
		Directive("touch " + after),
	}, nil, quietOpts())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirectiveExec))

	assert.FileExists(t, before)
	// The directive after the failure must not have executed
	assert.NoFileExists(t, after)
}

func TestRunRoutineDependencyRetriesOnce(t *testing.T) {
	dir := t.TempDir()
	flag := filepath.Join(dir, "flag")
	calls := 0

	r := New()
	err := r.Run(
		[]Directive{Directive("test -f " + flag)},
		Routine(func() error {
			calls++
			return os.WriteFile(flag, nil, 0644)
		}),
		quietOpts(),
	)

	require.NoError(t, err)
	assert.Equal(t, 1, calls, "dependency routine should run exactly once")
}

func TestRunRetryFailureDoesNotRemediateTwice(t *testing.T) {
	calls := 0

	r := New()
	err := r.Run(
		[]Directive{Directive("exit 1")},
		Routine(func() error {
			calls++
			return nil
		}),
		quietOpts(),
	)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirectiveExec))
	assert.Equal(t, 1, calls, "dependency must not run again after a failed retry")
}

func TestRunNestedDirectiveDependency(t *testing.T) {
	dir := t.TempDir()
	flag := filepath.Join(dir, "flag")

	r := New()
	err := r.Run(
		[]Directive{Directive("test -f " + flag)},
		Directives(Directive("touch "+flag)),
		quietOpts(),
	)

	require.NoError(t, err)
	assert.FileExists(t, flag)
}

func TestRunDependencyFaultIsFatal(t *testing.T) {
	r := New()
	err := r.Run(
		[]Directive{Directive("exit 1")},
		Directives(Directive("exit 7")),
		quietOpts(),
	)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDependencyExec))
}

func TestRunRoutineFaultIsFatal(t *testing.T) {
	r := New()
	err := r.Run(
		[]Directive{Directive("exit 1")},
		Routine(func() error { return fmt.Errorf("no network") }),
		quietOpts(),
	)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDependencyExec))
	assert.Contains(t, err.Error(), "no network")
}

func TestChdirVisibleToLaterDirectives(t *testing.T) {
	dir := t.TempDir()

	r := New()
	err := r.Run([]Directive{
		Directive("cd " + dir),
		Directive("touch here"),
	}, nil, quietOpts())

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "here"))
}

func TestChdirPersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	r := New()
	require.NoError(t, r.Run([]Directive{Directive("cd " + dir)}, nil, quietOpts()))
	require.NoError(t, r.Run([]Directive{Directive("touch later")}, nil, quietOpts()))

	assert.FileExists(t, filepath.Join(dir, "later"))
	assert.Equal(t, dir, r.Dir())
}

func TestChdirRelativeResolvesAgainstCurrent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	r := New()
	err := r.Run([]Directive{
		Directive("cd " + dir),
		Directive("cd sub"),
		Directive("touch nested"),
	}, nil, quietOpts())

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "sub", "nested"))
}

func TestChdirMissingDirectory(t *testing.T) {
	r := New()
	err := r.Run([]Directive{Directive("cd /does/not/exist")}, nil, quietOpts())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChdir))
}

func TestRunEchoesEveryDirective(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer

	r := New()
	err := r.Run([]Directive{
		Directive("cd " + dir),
		Directive("true"),
	}, nil, &Options{Stdout: &buf, Stderr: &buf})

	require.NoError(t, err)
	// Chdir directives get the same echo as everything else
	assert.Contains(t, buf.String(), "Running command: cd "+dir)
	assert.Contains(t, buf.String(), "Running command: true")
}

func TestOutputCapturesStdout(t *testing.T) {
	r := New()
	out, err := r.Output(Directive("echo hello"), quietOpts())

	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestOutputPropagatesFailure(t *testing.T) {
	r := New()
	_, err := r.Output(Directive("exit 3"), quietOpts())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirectiveExec))
}

func TestOptionsEnvReachesSubprocess(t *testing.T) {
	r := New()
	out, err := r.Output(Directive("printf '%s' \"$RIGUP_GREETING\""), &Options{
		Env: []string{"RIGUP_GREETING=hei"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hei", out)
}
