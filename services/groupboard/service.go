package groupboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"albumboard/lib/albumtable"
	"albumboard/lib/scrapers/albumsgen"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/groupboard")

// Session owns the loaded album table for one group page. The table
// is replaced wholesale on a successful refresh and left untouched on
// any failure, there is never a partially updated snapshot. The mutex
// only exists because handlers read while a refresh may swap, every
// read sees either the old snapshot or the new one in full.
type Session struct {
	client   *albumsgen.Client
	groupURL string

	mu          sync.RWMutex
	table       albumtable.Table
	warnings    []albumsgen.Warning
	lastUpdated time.Time
}

func NewSession(client *albumsgen.Client, groupURL string) *Session {
	return &Session{
		client:   client,
		groupURL: groupURL,
	}
}

// Refresh scrapes the group page and swaps the snapshot in. On error
// the previous snapshot stays live. Returned warnings describe rows
// that were dropped or loaded with defaulted fields.
func (s *Session) Refresh(ctx context.Context) ([]albumsgen.Warning, error) {
	ctx, span := tracer.Start(ctx, "Refresh")
	defer span.End()
	span.SetAttributes(attribute.String("group_url", s.groupURL))

	records, warnings, err := s.client.ScrapeGroup(ctx, s.groupURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	table := albumtable.Build(records)

	s.mu.Lock()
	s.table = table
	s.warnings = warnings
	s.lastUpdated = time.Now()
	s.mu.Unlock()

	slog.InfoContext(ctx, "refreshed album table",
		"group_url", s.groupURL,
		"records", table.Len(),
		"warnings", len(warnings),
	)
	return warnings, nil
}

func (s *Session) GroupURL() string {
	return s.groupURL
}

func (s *Session) Table() albumtable.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

func (s *Session) Warnings() []albumsgen.Warning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warnings
}

func (s *Session) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}
