package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/dealflow/internal/app"
)

const (
	doneSuffix     = ".imported"
	rejectedSuffix = ".rejected"
)

// DirSource discovers leads from YAML files dropped into a directory.
// Consumed files are renamed with a suffix so a record never enters the
// pipeline twice; files that fail to parse or validate are set aside the
// same way instead of blocking every later cycle.
type DirSource struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

var _ app.Sourcing = (*DirSource)(nil)

// NewDirSource creates a source over dir, creating the directory if needed.
func NewDirSource(dir string, logger *slog.Logger) (*DirSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating lead drop directory: %w", err)
	}
	return &DirSource{dir: dir, logger: logger, now: time.Now}, nil
}

// Discover reads every pending lead file in the directory in name order.
// A malformed file is logged, set aside and skipped; it does not abort the
// batch.
func (s *DirSource) Discover(ctx context.Context) ([]app.RawLead, error) {
	paths, err := s.pending()
	if err != nil {
		return nil, err
	}

	var leads []app.RawLead
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return leads, err
		}

		batch, err := s.consume(path)
		if err != nil {
			s.logger.Warn("skipping lead file", "path", path, "error", err)
			s.setAside(path, rejectedSuffix)
			continue
		}
		leads = append(leads, batch...)
		s.setAside(path, doneSuffix)
	}
	return leads, nil
}

func (s *DirSource) pending() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading lead drop directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *DirSource) consume(path string) ([]app.RawLead, error) {
	file, err := LoadLeadFile(path)
	if err != nil {
		return nil, err
	}
	if errs := ValidateLeadFile(file); len(errs) > 0 {
		parts := make([]string, len(errs))
		for i, e := range errs {
			parts[i] = e.Error()
		}
		return nil, fmt.Errorf("invalid lead file: %s", strings.Join(parts, "; "))
	}

	now := s.now().UTC()
	leads := make([]app.RawLead, 0, len(file.Leads))
	for _, l := range file.Leads {
		src := l.Source
		if src == "" {
			src = file.Source
		}
		if src == "" {
			src = "file_drop"
		}
		leads = append(leads, app.RawLead{
			BusinessName:     l.BusinessName,
			Source:           src,
			Website:          l.Website,
			WebsiteQuality:   l.WebsiteQuality,
			SocialProfiles:   l.SocialProfiles,
			Technologies:     l.Technologies,
			ContentTopics:    l.ContentTopics,
			OnlineReviews:    l.OnlineReviews,
			GrowthIndicators: l.GrowthIndicators,
			ServiceNeeds:     l.ServiceNeeds,
			BusinessMaturity: l.BusinessMaturity,
			DigitalPresence:  l.DigitalPresence,
			DiscoveredAt:     now,
		})
	}
	return leads, nil
}

func (s *DirSource) setAside(path, suffix string) {
	if err := os.Rename(path, path+suffix); err != nil {
		s.logger.Warn("archiving lead file", "path", path, "error", err)
	}
}
