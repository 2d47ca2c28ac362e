package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogEntry represents a single log entry in the buffer
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// LogBuffer keeps the latest entries in memory for the TUI and appends
// entries that fall out of the ring to a JSON-lines spill file.
type LogBuffer struct {
	mu          sync.Mutex
	ring        []LogEntry
	next        int
	wrapped     bool
	spillFile   *os.File
	spillWriter *bufio.Writer

	// Stats
	totalEntries   uint64
	spilledEntries uint64
}

// NewLogBuffer creates a buffer holding up to maxSize entries in memory
func NewLogBuffer(maxSize int, spillFilePath string) (*LogBuffer, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("invalid buffer size %d", maxSize)
	}

	if err := os.MkdirAll(filepath.Dir(spillFilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	spillFile, err := os.OpenFile(spillFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open spill file: %w", err)
	}

	return &LogBuffer{
		ring:        make([]LogEntry, maxSize),
		spillFile:   spillFile,
		spillWriter: bufio.NewWriter(spillFile),
	}, nil
}

// Add stores a new entry, spilling the one it overwrites
func (lb *LogBuffer) Add(level, message string, fields map[string]interface{}) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	return lb.add(LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    fields,
	})
}

func (lb *LogBuffer) add(entry LogEntry) error {
	var spillErr error
	if lb.wrapped {
		spillErr = lb.spill(lb.ring[lb.next])
		if spillErr == nil {
			lb.spilledEntries++
		}
	}

	lb.ring[lb.next] = entry
	lb.next = (lb.next + 1) % len(lb.ring)
	if lb.next == 0 {
		lb.wrapped = true
	}
	lb.totalEntries++

	return spillErr
}

// Write accepts JSON-encoded zap entries, one or more per call, so the
// buffer can back a zapcore.Core.
func (lb *LogBuffer) Write(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	for _, line := range bytes.Split(p, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if err := lb.add(decodeEntry(line)); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// decodeEntry maps a zap JSON line onto a LogEntry; lines that are not
// JSON are kept verbatim as the message.
func decodeEntry(line []byte) LogEntry {
	raw := make(map[string]interface{})
	if err := json.Unmarshal(line, &raw); err != nil {
		return LogEntry{Timestamp: time.Now(), Level: "info", Message: string(line)}
	}

	entry := LogEntry{Timestamp: time.Now(), Level: "info"}
	if v, ok := raw["level"].(string); ok {
		entry.Level = v
	}
	if v, ok := raw["msg"].(string); ok {
		entry.Message = v
	}
	if v, ok := raw["time"].(string); ok {
		if ts, err := time.Parse("2006-01-02T15:04:05.000Z0700", v); err == nil {
			entry.Timestamp = ts
		}
	}
	delete(raw, "level")
	delete(raw, "msg")
	delete(raw, "time")
	if len(raw) > 0 {
		entry.Fields = raw
	}
	return entry
}

func (lb *LogBuffer) spill(entry LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}
	if _, err := lb.spillWriter.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to spill file: %w", err)
	}
	return nil
}

// GetRecentLogs returns up to limit entries, oldest first. limit <= 0 means all.
func (lb *LogBuffer) GetRecentLogs(limit int) []LogEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	count, start := lb.next, 0
	if lb.wrapped {
		count, start = len(lb.ring), lb.next
	}

	skip := 0
	if limit > 0 && limit < count {
		skip = count - limit
	}

	logs := make([]LogEntry, 0, count-skip)
	for i := skip; i < count; i++ {
		logs = append(logs, lb.ring[(start+i)%len(lb.ring)])
	}
	return logs
}

// Sync flushes spilled entries to disk; it lets the buffer act as a zapcore.WriteSyncer
func (lb *LogBuffer) Sync() error {
	return lb.Flush()
}

// Flush forces a write of any buffered data to the spill file
func (lb *LogBuffer) Flush() error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if err := lb.spillWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush spill writer: %w", err)
	}
	if err := lb.spillFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync spill file: %w", err)
	}
	return nil
}

// Close writes the in-memory entries to the spill file and closes it
func (lb *LogBuffer) Close() error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	count, start := lb.next, 0
	if lb.wrapped {
		count, start = len(lb.ring), lb.next
	}
	for i := 0; i < count; i++ {
		if err := lb.spill(lb.ring[(start+i)%len(lb.ring)]); err != nil {
			return err
		}
	}

	if err := lb.spillWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush during close: %w", err)
	}
	if err := lb.spillFile.Close(); err != nil {
		return fmt.Errorf("failed to close spill file: %w", err)
	}
	return nil
}

// GetStats returns buffer statistics
func (lb *LogBuffer) GetStats() (total, spilled uint64) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.totalEntries, lb.spilledEntries
}

// StartPeriodicFlush flushes the spill file every interval. The returned
// stop func ends the loop and waits for an in-flight flush to finish, so
// Close can follow it safely.
func (lb *LogBuffer) StartPeriodicFlush(interval time.Duration, onError func(error)) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := lb.Flush(); err != nil && onError != nil {
					onError(err)
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-exited
	}
}
