package features

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/wkb"
	"go.uber.org/zap"

	"github.com/sells-group/gbr-features/internal/fetcher"
)

// Dataset column names.
const (
	ColumnFID          = "fid"
	ColumnID           = "UNIQUE_ID"
	ColumnName         = "GBR_NAME"
	ColumnLocationName = "LOC_NAME_S"
	ColumnGeometry     = "geometry"
)

// requiredColumns must be present in the file. The fid key is optional.
var requiredColumns = []string{ColumnID, ColumnName, ColumnLocationName, ColumnGeometry}

const readBatchSize = 1024

// parquetRow is the projection read from the dataset. Columns absent
// from this struct are not decoded into records.
type parquetRow struct {
	FID          int64  `parquet:"fid,optional"`
	ID           string `parquet:"UNIQUE_ID,optional"`
	Name         string `parquet:"GBR_NAME,optional"`
	LocationName string `parquet:"LOC_NAME_S,optional"`
	Geometry     []byte `parquet:"geometry,optional"`
}

// ErrRetrieval matches any RetrievalError under errors.Is.
var ErrRetrieval = errors.New("features: retrieval failed")

// RetrievalError reports that the dataset could not be fetched or read.
type RetrievalError struct {
	Source string
	Err    error
}

func (e *RetrievalError) Error() string {
	return "features: retrieve " + e.Source + ": " + e.Err.Error()
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrieval
}

// IsRetrievalError returns true if err or any error in its chain is a
// RetrievalError.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// Location is an s3://, http(s)://, file:// URL or a local path.
	Location string
	// Region is the bucket region used for s3:// locations.
	Region string
	// TempDir receives the downloaded file while it is read.
	TempDir string
}

// Loader fetches the complete features table. Nothing is cached between
// calls.
type Loader struct {
	fetcher fetcher.Fetcher
	opts    LoaderOptions
}

// NewLoader creates a Loader. Empty options fall back to the public
// dataset.
func NewLoader(f fetcher.Fetcher, opts LoaderOptions) *Loader {
	if opts.Location == "" {
		opts.Location = DefaultSource
		if opts.Region == "" {
			opts.Region = DefaultRegion
		}
	}
	return &Loader{fetcher: f, opts: opts}
}

// LoadAll fetches and decodes every row of the dataset. All failures are
// returned as *RetrievalError.
func (l *Loader) LoadAll(ctx context.Context) (Table, error) {
	src, err := ResolveSource(l.opts.Location, l.opts.Region)
	if err != nil {
		return nil, &RetrievalError{Source: l.opts.Location, Err: err}
	}

	log := zap.L().With(
		zap.String("component", "features.loader"),
		zap.String("source", src.Location),
	)

	path := src.Path
	if src.Remote() {
		tmp, err := l.download(ctx, src.URL)
		if err != nil {
			return nil, &RetrievalError{Source: src.Location, Err: err}
		}
		defer os.Remove(tmp) //nolint:errcheck
		path = tmp
	}

	table, err := ReadFile(path)
	if err != nil {
		return nil, &RetrievalError{Source: src.Location, Err: err}
	}

	log.Info("loaded features", zap.Int("rows", table.Len()))
	return table, nil
}

// download writes url to a fresh temp file and returns its path.
func (l *Loader) download(ctx context.Context, url string) (string, error) {
	if l.fetcher == nil {
		return "", eris.New("features: no fetcher configured for remote source")
	}

	if l.opts.TempDir != "" {
		if err := os.MkdirAll(l.opts.TempDir, 0o755); err != nil {
			return "", eris.Wrap(err, "features: create temp dir")
		}
	}
	f, err := os.CreateTemp(l.opts.TempDir, "gbr-features-*.parquet")
	if err != nil {
		return "", eris.Wrap(err, "features: create temp file")
	}
	path := f.Name()
	_ = f.Close()

	zap.L().Info("downloading features dataset",
		zap.String("component", "features.loader"),
		zap.String("url", url),
	)

	n, err := l.fetcher.DownloadToFile(ctx, url, path)
	if err != nil {
		_ = os.Remove(path)
		return "", eris.Wrap(err, "features: download dataset")
	}

	zap.L().Debug("downloaded features dataset",
		zap.String("component", "features.loader"),
		zap.Int64("bytes", n),
	)
	return path, nil
}

// ReadFile decodes a features parquet file from disk.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "features: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	info, err := f.Stat()
	if err != nil {
		return nil, eris.Wrapf(err, "features: stat %s", path)
	}

	return Read(f, info.Size())
}

// Read decodes a features parquet file of the given size.
func Read(r io.ReaderAt, size int64) (Table, error) {
	file, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, eris.Wrap(err, "features: open parquet")
	}

	for _, col := range requiredColumns {
		if _, ok := file.Schema().Lookup(col); !ok {
			return nil, eris.Errorf("features: dataset is missing column %s", col)
		}
	}

	reader := parquet.NewGenericReader[parquetRow](file)
	defer reader.Close() //nolint:errcheck

	table := make(Table, 0, reader.NumRows())
	buf := make([]parquetRow, readBatchSize)
	for {
		n, readErr := reader.Read(buf)
		for i := range buf[:n] {
			rec, err := buf[i].record()
			if err != nil {
				return nil, err
			}
			table = append(table, rec)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, eris.Wrap(readErr, "features: read rows")
		}
		if n == 0 {
			break
		}
	}

	return table, nil
}

// record converts a decoded row, parsing its WKB geometry.
func (p *parquetRow) record() (Record, error) {
	rec := Record{
		FID:          p.FID,
		ID:           p.ID,
		Name:         p.Name,
		LocationName: p.LocationName,
	}
	if len(p.Geometry) == 0 {
		return rec, nil
	}
	g, err := wkb.Unmarshal(p.Geometry)
	if err != nil {
		return Record{}, eris.Wrapf(err, "features: decode geometry for %s", p.ID)
	}
	rec.Geometry = g
	return rec, nil
}
