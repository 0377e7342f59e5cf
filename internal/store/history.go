package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mrz1836/assetrack/internal/domain"
)

// maxHistoryLine bounds a single history record.
const maxHistoryLine = 1 << 20

// appendHistory appends one JSON line to the project's audit log.
// Callers hold the project lock.
func (s *FileStore) appendHistory(project string, entry *domain.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(s.historyFilePath(project), os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync history: %w", err)
	}
	return nil
}

// History returns audit entries in the order they were written. An empty
// itemID returns every entry. Malformed lines are logged and skipped.
func (s *FileStore) History(ctx context.Context, project, itemID string) ([]*domain.HistoryEntry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := s.checkProject(project); err != nil {
		return nil, err
	}

	entries := []*domain.HistoryEntry{}
	f, err := os.Open(s.historyFilePath(project)) //#nosec G304 -- path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("failed to read history for '%s': %w", project, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxHistoryLine)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var e domain.HistoryEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			s.logger.Warn().Err(err).Str("project", project).Int("line", line).Msg("skipping malformed history line")
			continue
		}
		if itemID != "" && e.ItemID != itemID {
			continue
		}
		entries = append(entries, &e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history for '%s': %w", project, err)
	}
	return entries, nil
}
