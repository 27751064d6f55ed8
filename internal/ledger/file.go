package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/KenRoach/kitzV1-sub005/internal/artifact"
	"github.com/KenRoach/kitzV1-sub005/internal/event"
)

const (
	eventsFile    = "events.ndjson"
	artifactsFile = "artifacts.ndjson"
)

// FileLedger persists events and artifacts as newline-delimited JSON in two
// separate append-only streams under a single directory. It survives process
// restarts; replay order is the order records were appended.
type FileLedger struct {
	mu        sync.Mutex
	dir       string
	events    *os.File
	artifacts *os.File
}

// NewFileLedger opens (creating if needed) the two log streams under dir.
func NewFileLedger(dir string) (*FileLedger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	ev, err := os.OpenFile(filepath.Join(dir, eventsFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	ar, err := os.OpenFile(filepath.Join(dir, artifactsFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		ev.Close()
		return nil, fmt.Errorf("open artifact log: %w", err)
	}
	return &FileLedger{dir: dir, events: ev, artifacts: ar}, nil
}

// AppendEvent writes one event as a single NDJSON line.
func (l *FileLedger) AppendEvent(e *event.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return appendLine(l.events, e)
}

// AppendArtifact writes one artifact as a single NDJSON line.
func (l *FileLedger) AppendArtifact(a artifact.Artifact) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return appendLine(l.artifacts, a)
}

// ListEvents replays the full event stream in insertion order.
func (l *FileLedger) ListEvents() ([]event.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []event.Event
	err := replay(filepath.Join(l.dir, eventsFile), func(line []byte) error {
		var e event.Event
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

// ListArtifacts replays the full artifact stream in insertion order.
func (l *FileLedger) ListArtifacts() ([]artifact.Artifact, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []artifact.Artifact
	err := replay(filepath.Join(l.dir, artifactsFile), func(line []byte) error {
		var a artifact.Artifact
		if err := json.Unmarshal(line, &a); err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	return out, err
}

// Close closes both streams.
func (l *FileLedger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	evErr := l.events.Close()
	arErr := l.artifacts.Close()
	if evErr != nil {
		return evErr
	}
	return arErr
}

func appendLine(f *os.File, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal ledger record: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append ledger record: %w", err)
	}
	return nil
}

func replay(path string, visit func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open ledger stream: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := visit(line); err != nil {
			return fmt.Errorf("replay ledger stream: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ledger stream: %w", err)
	}
	return nil
}
