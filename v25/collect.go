package v25

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atmodata/atmodata/columns"
	"github.com/atmodata/atmodata/errs"
	"github.com/atmodata/atmodata/internal/options"
)

// CollectOption configures CollectLogs and CollectOSC.
type CollectOption = options.Option[*collectConfig]

type collectConfig struct {
	sep       string
	headerRow int

	// OSC header layout
	headerSep    string
	startTimeRow int
	numOscRow    int
	timeLayout   string
}

func newCollectConfig() *collectConfig {
	return &collectConfig{
		sep:          "\t",
		headerSep:    " ",
		startTimeRow: 0,
		numOscRow:    3,
		headerRow:    0,
		timeLayout:   "02.01.06 15:04:05.000",
	}
}

// WithCollectSeparator sets the data field separator. The default is tab.
func WithCollectSeparator(sep string) CollectOption {
	return options.New(func(c *collectConfig) error {
		if sep == "" {
			return fmt.Errorf("separator must not be empty")
		}
		c.sep = sep
		return nil
	})
}

// WithCollectHeaderRow sets the zero-based column-header row. The default
// is 0 for plain V25 logs; CollectOSC uses 4 unless overridden.
func WithCollectHeaderRow(ix int) CollectOption {
	return options.New(func(c *collectConfig) error {
		if ix < 0 {
			return fmt.Errorf("header row index must not be negative")
		}
		c.headerRow = ix
		return nil
	})
}

// WithStartTimeLayout sets the time.Parse layout of the OSC start-time
// header line. The default matches the FAIRO detector's
// "02.01.06 15:04:05.000".
func WithStartTimeLayout(layout string) CollectOption {
	return options.New(func(c *collectConfig) error {
		if layout == "" {
			return fmt.Errorf("time layout must not be empty")
		}
		c.timeLayout = layout
		return nil
	})
}

// CollectLogs merges all files with the given extension found in folders
// (case-insensitive, sorted by path) into one table. Files whose column
// names differ from the first file are skipped.
func CollectLogs(folders []string, ext string, opts ...CollectOption) (*columns.Table, error) {
	cfg := newCollectConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	files, err := selectFiles(folders, []string{ext})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .%s files in %v: %w",
			strings.TrimPrefix(ext, "."), folders, errs.ErrEmptyData)
	}

	merged, err := columns.ParseFile(files[0],
		columns.WithSeparator(cfg.sep), columns.WithHeaderRow(cfg.headerRow))
	if err != nil {
		return nil, err
	}

	for _, file := range files[1:] {
		tbl, err := columns.ParseFile(file,
			columns.WithSeparator(cfg.sep), columns.WithHeaderRow(cfg.headerRow))
		if err != nil {
			return nil, err
		}
		if err := merged.Append(tbl); err != nil {
			continue // mismatched column set, not the same data source
		}
	}

	return merged, nil
}

// OSCLog holds the merged logfiles of the FAIRO CL detector (OSCAR).
type OSCLog struct {
	// Table holds the merged data block, column names upper-cased.
	Table *columns.Table

	// Posix is the TIME column converted to POSIX seconds by adding each
	// file's header start time. Aligned with Table rows.
	Posix []float64

	// SetHV and NumOsc hold the per-file "Set HV" and "N Oscar" header
	// values in file order.
	SetHV  []string
	NumOsc []string
}

// CollectOSC merges all .osc files found in folders. Each file carries its
// own header block: line 0 holds the start time of the recording, lines 2
// and 3 the HV setting and oscillator count, line 4 the column header. The
// relative TIME column of every file is rebased onto its start time to
// form a continuous POSIX axis.
func CollectOSC(folders []string, opts ...CollectOption) (*OSCLog, error) {
	cfg := newCollectConfig()
	cfg.headerRow = 4
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	files, err := selectFiles(folders, []string{"osc"})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .osc files in %v: %w", folders, errs.ErrEmptyData)
	}

	log := &OSCLog{}
	for _, file := range files {
		tbl, posix, setHV, numOsc, err := parseOSC(file, cfg)
		if err != nil {
			return nil, err
		}

		if log.Table == nil {
			log.Table = tbl
		} else if err := log.Table.Append(tbl); err != nil {
			continue
		}
		log.Posix = append(log.Posix, posix...)
		log.SetHV = append(log.SetHV, setHV)
		log.NumOsc = append(log.NumOsc, numOsc)
	}

	return log, nil
}

func parseOSC(file string, cfg *collectConfig) (*columns.Table, []float64, string, string, error) {
	tbl, err := columns.ParseFile(file,
		columns.WithSeparator(cfg.sep),
		columns.WithHeaderRow(cfg.headerRow),
		columns.WithUpperNames(true))
	if err != nil {
		return nil, nil, "", "", err
	}
	// The parser yields exactly headerRow FileHeader lines, so a small
	// header row cannot hold the start-time and oscillator-count lines.
	if cfg.startTimeRow >= len(tbl.FileHeader) || cfg.numOscRow < 1 || cfg.numOscRow >= len(tbl.FileHeader) {
		return nil, nil, "", "", fmt.Errorf("%s: %d header lines, start time expected on line %d and oscillator count on line %d: %w",
			file, len(tbl.FileHeader), cfg.startTimeRow+1, cfg.numOscRow+1, errs.ErrBadFormat)
	}

	start, err := time.ParseInLocation(cfg.timeLayout, tbl.FileHeader[cfg.startTimeRow], time.UTC)
	if err != nil {
		return nil, nil, "", "", fmt.Errorf("%s: start time: %w", file, errs.ErrBadFormat)
	}

	setHV := lastField(tbl.FileHeader[cfg.numOscRow-1], cfg.headerSep)
	numOsc := lastField(tbl.FileHeader[cfg.numOscRow], cfg.headerSep)

	rel, err := tbl.Floats("TIME")
	if err != nil {
		return nil, nil, "", "", fmt.Errorf("%s: %w", file, err)
	}

	t0 := float64(start.UnixNano()) / float64(time.Second)
	posix := make([]float64, len(rel))
	for i, r := range rel {
		posix[i] = t0 + r
	}

	return tbl, posix, setHV, numOsc, nil
}

func lastField(line, sep string) string {
	fields := strings.Split(strings.TrimSpace(line), sep)
	return fields[len(fields)-1]
}

// WriteMerged writes tbl as delimited text to path, column header first.
// Parent directories are created as needed. An existing file is never
// overwritten; the call fails with ErrFileExists instead.
func WriteMerged(tbl *columns.Table, path, sep string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, errs.ErrFileExists)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(tbl.Names, sep))
	sb.WriteByte('\n')
	for i := 0; i < tbl.Len(); i++ {
		sb.WriteString(strings.Join(tbl.Row(i), sep))
		sb.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
