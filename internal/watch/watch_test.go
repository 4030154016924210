package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_ReloadsOncePerBurst(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := New(dir, func() { calls.Add(1) }, WithDebounce(50*time.Millisecond), WithExtensions("tmpl"))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "page.tmpl"), []byte{byte('a' + i)}, 0o600))
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, w.Reloads())
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := New(dir, func() { calls.Add(1) }, WithDebounce(20*time.Millisecond), WithExtensions(".tmpl"))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_FollowsNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := New(dir, func() { calls.Add(1) }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	sub := filepath.Join(dir, "components")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(sub, "input.tmpl"), []byte("x"), 0o600)
		return calls.Load() > 0
	}, 2*time.Second, 50*time.Millisecond)
}

func TestWatcher_RunStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, func() {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_RequiresRootAndReload(t *testing.T) {
	_, err := New("", func() {})
	require.Error(t, err)
	_, err = New(t.TempDir(), nil)
	require.Error(t, err)
}

func TestStart_MissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), func() {})
	require.NoError(t, err)
	require.Error(t, w.Start(context.Background()))
	w.Stop()
}
