package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/marcosfpr/bridge/document"
	"github.com/marcosfpr/bridge/logx"
	"github.com/marcosfpr/bridge/schema"
	"github.com/marcosfpr/bridge/workers"
)

// PackageOption configures PackageDir: which files to walk and ingest,
// how many worker goroutines read and encode them concurrently, and
// which stored text field their contents are written under.
type PackageOption struct {
	Path        string
	Pattern     string
	WorkerCount int
	BodyField   string
}

// PackageDir walks Path, reads every regular file matching Pattern (or
// every file, if empty) and writes one document per file into w under
// schema's BodyField, fanning the file reads out across WorkerCount
// goroutines feeding the single Writer serialized by its own mutex,
// using workers.RunJobs's seeder/task pair to drive the fan-out.
func PackageDir(option PackageOption, s *schema.Schema, w *Writer) error {
	id, err := s.GetFieldID(option.BodyField)
	if err != nil {
		return err
	}

	var pattern *regexp.Regexp
	if option.Pattern != "" {
		pattern, err = regexp.Compile(option.Pattern)
		if err != nil {
			return err
		}
	}

	workerCount := option.WorkerCount
	if workerCount < 1 {
		workerCount = 1
	}

	paths := make(chan string, workerCount*3)
	var firstErr error
	var errMu sync.Mutex
	setErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	seeder := func(group *sync.WaitGroup) {
		defer group.Done()
		defer close(paths)
		err := filepath.WalkDir(option.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logx.Warnf("store: skip %s: %v", path, err)
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if pattern != nil && !pattern.MatchString(path) {
				return nil
			}
			paths <- path
			return nil
		})
		if err != nil {
			setErr(err)
		}
	}

	task := func(group *sync.WaitGroup, no int) {
		defer group.Done()
		for path := range paths {
			content, err := os.ReadFile(path)
			if err != nil {
				logx.Warnf("store: worker %d: read %s: %v", no, path, err)
				setErr(err)
				continue
			}
			field := document.Field{ID: id, Value: document.NewTextValue(string(content))}
			if _, err := w.Write(field); err != nil {
				setErr(err)
			}
		}
	}

	workers.RunJobs(workerCount, task, seeder)
	if firstErr != nil {
		return fmt.Errorf("store: package %s: %w", option.Path, firstErr)
	}
	return nil
}
