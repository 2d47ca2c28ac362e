package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogBufferConcurrentAccess(t *testing.T) {
	spillFile := filepath.Join(t.TempDir(), "test_spill.log")

	buffer, err := NewLogBuffer(100, spillFile)
	require.NoError(t, err)
	defer buffer.Close()

	stop := buffer.StartPeriodicFlush(20*time.Millisecond, func(err error) {
		t.Errorf("periodic flush: %v", err)
	})
	defer stop()

	var wg sync.WaitGroup
	numGoroutines := 10
	logsPerGoroutine := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < logsPerGoroutine; j++ {
				fields := map[string]interface{}{"goroutine": id, "iteration": j}
				assert.NoError(t, buffer.Add("info", fmt.Sprintf("entry %d/%d", id, j), fields))
				if j%10 == 0 {
					_ = buffer.GetRecentLogs(10)
				}
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, buffer.Flush())

	total, spilled := buffer.GetStats()
	assert.Equal(t, uint64(numGoroutines*logsPerGoroutine), total)
	assert.Equal(t, total-100, spilled)
	assert.Len(t, buffer.GetRecentLogs(0), 100)
}

func TestLogBufferRingBufferBehavior(t *testing.T) {
	buffer, err := NewLogBuffer(5, filepath.Join(t.TempDir(), "ring.log"))
	require.NoError(t, err)
	defer buffer.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, buffer.Add("info", fmt.Sprintf("Log %d", i), nil))
	}

	logs := buffer.GetRecentLogs(10)
	require.Len(t, logs, 5)
	assert.Equal(t, "Log 5", logs[0].Message)
	assert.Equal(t, "Log 9", logs[4].Message)

	latest := buffer.GetRecentLogs(2)
	require.Len(t, latest, 2)
	assert.Equal(t, "Log 8", latest[0].Message)
	assert.Equal(t, "Log 9", latest[1].Message)
}

func TestLogBufferBeforeWrap(t *testing.T) {
	buffer, err := NewLogBuffer(5, filepath.Join(t.TempDir(), "partial.log"))
	require.NoError(t, err)
	defer buffer.Close()

	assert.Empty(t, buffer.GetRecentLogs(0))

	require.NoError(t, buffer.Add("warn", "first", nil))
	require.NoError(t, buffer.Add("info", "second", nil))

	logs := buffer.GetRecentLogs(0)
	require.Len(t, logs, 2)
	assert.Equal(t, "first", logs[0].Message)
	assert.Equal(t, "warn", logs[0].Level)
}

func TestLogBufferCloseSpillsEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.log")
	buffer, err := NewLogBuffer(3, path)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, buffer.Add("info", fmt.Sprintf("Log %d", i), nil))
	}
	require.NoError(t, buffer.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var messages []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"Log 0", "Log 1", "Log 2", "Log 3"}, messages)
}

func TestNewLogBufferRejectsZeroSize(t *testing.T) {
	_, err := NewLogBuffer(0, filepath.Join(t.TempDir(), "zero.log"))
	assert.Error(t, err)
}

func TestTUILoggerWritesIntoBuffer(t *testing.T) {
	buffer, err := NewLogBuffer(10, filepath.Join(t.TempDir(), "tui.log"))
	require.NoError(t, err)
	defer buffer.Close()

	log, err := CreateTUILogger(false, buffer)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("Mode changed", zap.String("mode", "percentage"))
	log.Warn("Export failed", zap.Int("attempt", 2))

	logs := buffer.GetRecentLogs(0)
	require.Len(t, logs, 2)
	assert.Equal(t, "Mode changed", logs[0].Message)
	assert.Equal(t, "info", logs[0].Level)
	assert.Equal(t, "percentage", logs[0].Fields["mode"])
	assert.Equal(t, "warn", logs[1].Level)
	assert.EqualValues(t, 2, logs[1].Fields["attempt"])

	_, err = CreateTUILogger(false, nil)
	assert.Error(t, err)
}

func TestPeriodicFlushStopWaitsForLoop(t *testing.T) {
	buffer, err := NewLogBuffer(2, filepath.Join(t.TempDir(), "spill.log"))
	require.NoError(t, err)

	var flushErrs int32
	stop := buffer.StartPeriodicFlush(time.Millisecond, func(error) {
		atomic.AddInt32(&flushErrs, 1)
	})

	for i := 0; i < 20; i++ {
		require.NoError(t, buffer.Add("info", fmt.Sprintf("entry %d", i), nil))
	}
	time.Sleep(10 * time.Millisecond)

	stop()
	stop() // idempotent
	require.NoError(t, buffer.Close())

	// no flush may run against the closed spill file
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&flushErrs))
}
