// Package backup snapshots the project store to timestamped JSON files on a cron schedule.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/logging"
	"github.com/devfolio/portfolio-api/internal/projects/repository"
)

const (
	filePrefix = "projects-"
	fileSuffix = ".json"
	// stampLayout sorts lexically in time order.
	stampLayout = "20060102T150405"
)

// Scheduler writes periodic snapshots of the whole store.
type Scheduler struct {
	store repository.Store
	dir   string
	keep  int
	log   *logging.Logger
	now   func() time.Time
	cron  *cron.Cron
}

// NewScheduler creates a scheduler writing into dir and keeping the newest keep files
// (keep <= 0 keeps everything).
func NewScheduler(store repository.Store, dir string, keep int, log *logging.Logger) *Scheduler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Scheduler{
		store: store,
		dir:   dir,
		keep:  keep,
		log:   log,
		now:   time.Now,
	}
}

// Start schedules Snapshot with a standard five-field cron spec, e.g. "0 3 * * *".
func (s *Scheduler) Start(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		path, err := s.Snapshot(ctx)
		if err != nil {
			s.log.Error(ctx, "project backup failed", zap.Error(err))
			return
		}
		s.log.Info(ctx, "project backup written", zap.String("path", path))
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}

	s.cron = c
	c.Start()
	s.log.Info(context.Background(), "backup scheduler started", zap.String("schedule", spec), zap.String("dir", s.dir))
	return nil
}

// Stop halts scheduling and waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// Snapshot writes the current store contents to a new file and prunes old ones.
func (s *Scheduler) Snapshot(ctx context.Context) (string, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("load projects: %w", err)
	}
	data, err := repository.EncodeDocument(projects)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(s.dir, filePrefix+s.now().UTC().Format(stampLayout)+fileSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	if err := s.prune(); err != nil {
		s.log.Warn(ctx, "pruning old backups failed", zap.Error(err))
	}
	return path, nil
}

// List returns existing snapshot paths, oldest first.
func (s *Scheduler) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		out = append(out, filepath.Join(s.dir, name))
	}
	sort.Strings(out)
	return out, nil
}

func (s *Scheduler) prune() error {
	if s.keep <= 0 {
		return nil
	}
	files, err := s.List()
	if err != nil {
		return err
	}
	for len(files) > s.keep {
		if err := os.Remove(files[0]); err != nil {
			return err
		}
		files = files[1:]
	}
	return nil
}
