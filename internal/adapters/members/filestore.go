package members

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/pkg/logger"
	"github.com/okian/regatta/pkg/metrics"
)

const fieldsPerRecord = 4 // ID, Name, Year, IsNew

// FileStore keeps each affiliation's members in <dir>/<CODE> as
// tab-separated rows.
type FileStore struct {
	dir  string
	crlf bool
	log  logger.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store rooted at dir. The directory is created on the
// first Save.
func NewFileStore(dir string, opts ...Option) *FileStore {
	s := &FileStore{
		dir:  dir,
		crlf: runtime.GOOS == "windows",
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the members of affiliation.
func (s *FileStore) Load(ctx context.Context, affiliation string) ([]model.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(affiliation)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, affiliation)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	out, err := decode(f)
	if err != nil {
		metrics.RecordErrorByComponent("members", "malformed")
		return nil, fmt.Errorf("%s: %w", affiliation, err)
	}
	metrics.RecordMembersLoaded(len(out))
	s.log.Debug(ctx, "members loaded",
		logger.String("affiliation", affiliation),
		logger.Int("count", len(out)))
	return out, nil
}

// Save writes members to the affiliation file, replacing it atomically.
func (s *FileStore) Save(ctx context.Context, affiliation string, members []model.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(affiliation)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+affiliation+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", affiliation, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := s.encode(tmp, members); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", affiliation, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", affiliation, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	metrics.RecordMemberFileWritten()
	s.log.Info(ctx, "members saved",
		logger.String("affiliation", affiliation),
		logger.Int("count", len(members)))
	return nil
}

// Affiliations lists the affiliation files in the store directory. A missing
// directory holds no affiliations.
func (s *FileStore) Affiliations(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

func (s *FileStore) path(affiliation string) (string, error) {
	if affiliation == "" || strings.ContainsAny(affiliation, `/\`) || strings.HasPrefix(affiliation, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidAffiliation, affiliation)
	}
	return filepath.Join(s.dir, affiliation), nil
}

func decode(r io.Reader) ([]model.Member, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = fieldsPerRecord

	var out []model.Member
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		line, _ := cr.FieldPos(0)
		year, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: year %q", ErrMalformed, line, rec[2])
		}
		isNew, err := strconv.ParseBool(strings.TrimSpace(rec[3]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: new flag %q", ErrMalformed, line, rec[3])
		}
		out = append(out, model.Member{
			Sailor: model.Sailor{
				ID:   strings.TrimSpace(rec[0]),
				Name: strings.TrimSpace(rec[1]),
				Year: year,
			},
			IsNew: isNew,
		})
	}
}

func (s *FileStore) encode(w io.Writer, members []model.Member) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	cw.UseCRLF = s.crlf
	for _, m := range members {
		rec := []string{m.ID, m.Name, strconv.Itoa(m.Year), strconv.FormatBool(m.IsNew)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
