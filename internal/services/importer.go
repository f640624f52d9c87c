package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"eventregistration/internal/domain"
)

// Column names recognised in an import header. Title falls back in order.
var (
	titleColumns       = []string{"Event Title", "title"}
	descriptionColumns = []string{"Description"}
	dateColumns        = []string{"Date"}
	locationColumns    = []string{"Location"}
	capacityColumns    = []string{"Capacity"}
)

var (
	errInvalidEncoding = errors.New("file is not valid UTF-8")
	utf8BOM            = []byte("\xef\xbb\xbf")
)

type importService struct {
	eventRepo      domain.EventRepository
	tx             domain.Transactor
	dates          domain.DateParser
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewImportService(
	eventRepo domain.EventRepository,
	tx domain.Transactor,
	dates domain.DateParser,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ImportService {
	return &importService{
		eventRepo:      eventRepo,
		tx:             tx,
		dates:          dates,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *importService) Import(ctx context.Context, r io.Reader) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	records, err := readRecords(r)
	if err != nil {
		return 0, &domain.ImportError{Err: err}
	}
	if len(records) < 2 {
		return 0, nil
	}

	header := indexHeader(records[0])
	now := time.Now().UTC()
	events := make([]*domain.Event, 0, len(records)-1)
	skipped := 0
	for _, row := range records[1:] {
		event, ok := s.rowToEvent(header, row, now)
		if !ok {
			skipped++
			continue
		}
		events = append(events, event)
	}

	if len(events) > 0 {
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			for _, e := range events {
				if err := s.eventRepo.Create(ctx, e); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("import events: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "csv import finished", "inserted", len(events), "skipped", skipped)
	return len(events), nil
}

// readRecords decodes the whole input before anything is written, so a
// syntax error on the last line still aborts the import.
func readRecords(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if !utf8.Valid(raw) {
		return nil, errInvalidEncoding
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

// field returns the first non-blank value among names. Short rows read as blank.
func field(header map[string]int, row []string, names ...string) string {
	for _, name := range names {
		i, ok := header[name]
		if !ok || i >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
	}
	return ""
}

func (s *importService) rowToEvent(header map[string]int, row []string, now time.Time) (*domain.Event, bool) {
	title := field(header, row, titleColumns...)
	if title == "" {
		return nil, false
	}
	date, err := s.dates.Parse(field(header, row, dateColumns...))
	if err != nil {
		return nil, false
	}
	capacity, err := strconv.Atoi(field(header, row, capacityColumns...))
	if err != nil || capacity < 0 {
		capacity = 0
	}
	return domain.NewEvent(
		title,
		field(header, row, descriptionColumns...),
		date,
		field(header, row, locationColumns...),
		capacity,
		now, now,
	), true
}
