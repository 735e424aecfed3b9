package dataset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/vendq/vendq/entity"
)

// FileSource reads the payment-terms records file and re-reads it whenever
// it is written. Reference data is small and edited in place, so every
// reload parses the whole file rather than tailing it.
type FileSource struct {
	path      string
	processor Processor
	logger    *slog.Logger
}

func NewFileSource(logger *slog.Logger, path string, processor Processor) *FileSource {
	return &FileSource{
		logger:    logger,
		path:      path,
		processor: processor,
	}
}

// Load parses the whole records file. Lines that fail to process are
// logged and skipped; a file that cannot be opened fails the load.
func (f *FileSource) Load() ([]entity.PaymentTerm, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("cannot open records file: %w", err)
	}
	defer file.Close()

	var terms []entity.PaymentTerm
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		term, err := f.processor.Process(line)
		if err != nil {
			f.logger.Warn("skipping bad record", "path", f.path, "line", lineNo, "error", err)
			continue
		}
		terms = append(terms, term)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read records file: %w", err)
	}

	return terms, nil
}

// Watch reloads the file on every write event and hands the fresh set to
// onReload. A reload that fails keeps the previous dataset in place.
func (f *FileSource) Watch(ctx context.Context, onReload func([]entity.PaymentTerm)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(f.path); err != nil {
		return fmt.Errorf("cannot add file to watcher: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				f.logger.Debug("fsnotify watcher channel is closed.")
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				f.logger.Debug("Received unhandled event from fsnotify.", "event", event.String())
				continue
			}

			terms, err := f.Load()
			if err != nil {
				f.logger.Error("dataset reload failed, keeping previous records", "path", f.path, "error", err)
				continue
			}

			f.logger.Info("dataset reloaded", "path", f.path, "records", len(terms))
			onReload(terms)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
