package v25

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/atmodata/atmodata/internal/options"
)

var errNilLogger = errors.New("logger must not be nil")

// CleanedMarker is the name of the file dropped into a folder after a
// successful cleanup run. Folders containing it are skipped on later runs.
const CleanedMarker = "V25Logs_cleaned.done"

// CleanOption configures Cleanup.
type CleanOption = options.Option[*cleanConfig]

type cleanConfig struct {
	log              *logrus.Logger
	checkMarker      bool
	dropMarker       bool
	removeDuplicates bool
}

func newCleanConfig() *cleanConfig {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &cleanConfig{
		log:         log,
		checkMarker: true,
		dropMarker:  true,
	}
}

// WithLogger routes cleanup progress to log. The default discards all
// output.
func WithLogger(log *logrus.Logger) CleanOption {
	return options.New(func(c *cleanConfig) error {
		if log == nil {
			return errNilLogger
		}
		c.log = log
		return nil
	})
}

// WithMarkerCheck controls whether folders containing the CleanedMarker
// file are skipped. Enabled by default.
func WithMarkerCheck(enabled bool) CleanOption {
	return options.NoError(func(c *cleanConfig) {
		c.checkMarker = enabled
	})
}

// WithMarkerDrop controls whether the CleanedMarker file is written into
// each cleaned folder. Enabled by default.
func WithMarkerDrop(enabled bool) CleanOption {
	return options.NoError(func(c *cleanConfig) {
		c.dropMarker = enabled
	})
}

// WithDuplicateRemoval deletes files whose content hash repeats an earlier
// file in the scan. Disabled by default: duplicates are only reported in
// CleanResult.
func WithDuplicateRemoval(enabled bool) CleanOption {
	return options.NoError(func(c *cleanConfig) {
		c.removeDuplicates = enabled
	})
}

// CleanResult reports what a Cleanup run changed. Paths are in scan order.
type CleanResult struct {
	// Deleted lists removed files: empty, header-only, or reduced to
	// header-only by an incomplete last line.
	Deleted []string

	// Truncated lists files whose incomplete last line was cut off.
	Truncated []string

	// Duplicates lists files whose content repeats an earlier file. They
	// are deleted only with WithDuplicateRemoval.
	Duplicates []string
}

// Cleanup repairs V25 logfiles in folders, considering only files whose
// extension matches one of exts (case-insensitive, without leading dot).
// Files that are empty or hold only a header line are deleted. A last line
// without trailing newline is incomplete and is cut off; if that would
// leave only the header, the file is deleted instead. Content duplicates
// are detected by xxhash.
func Cleanup(folders, exts []string, opts ...CleanOption) (*CleanResult, error) {
	cfg := newCleanConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var todo []string
	for _, folder := range folders {
		if cfg.checkMarker {
			if _, err := os.Stat(filepath.Join(folder, CleanedMarker)); err == nil {
				cfg.log.WithField("folder", folder).Info("already cleaned, skipping")
				continue
			}
		}
		todo = append(todo, folder)
	}
	if len(todo) == 0 {
		cfg.log.Info("nothing to clean")
		return &CleanResult{}, nil
	}

	files, err := selectFiles(todo, exts)
	if err != nil {
		return nil, err
	}

	result := &CleanResult{}
	seen := make(map[uint64]string)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return result, err
		}

		lines := strings.Count(string(data), "\n")
		complete := len(data) == 0 || data[len(data)-1] == '\n'
		if !complete {
			lines++
		}

		if lines <= 1 {
			if err := os.Remove(file); err != nil {
				return result, err
			}
			cfg.log.WithField("file", filepath.Base(file)).Info("deleted")
			result.Deleted = append(result.Deleted, file)
			continue
		}

		if !complete {
			if lines <= 2 {
				// header only once the incomplete line is gone
				if err := os.Remove(file); err != nil {
					return result, err
				}
				cfg.log.WithField("file", filepath.Base(file)).Info("deleted")
				result.Deleted = append(result.Deleted, file)
				continue
			}

			cut := data[:strings.LastIndexByte(string(data), '\n')+1]
			if err := os.WriteFile(file, cut, 0o644); err != nil {
				return result, err
			}
			cfg.log.WithField("file", filepath.Base(file)).Info("deleted incomplete last line")
			result.Truncated = append(result.Truncated, file)
			data = cut
		}

		sum := xxhash.Sum64(data)
		if first, dup := seen[sum]; dup {
			cfg.log.WithFields(logrus.Fields{
				"file": filepath.Base(file),
				"of":   filepath.Base(first),
			}).Warn("duplicate content")
			result.Duplicates = append(result.Duplicates, file)
			if cfg.removeDuplicates {
				if err := os.Remove(file); err != nil {
					return result, err
				}
			}
			continue
		}
		seen[sum] = file
	}

	if cfg.dropMarker {
		for _, folder := range todo {
			marker := filepath.Join(folder, CleanedMarker)
			if _, err := os.Stat(marker); err == nil {
				continue
			}
			content := []byte("# files in this folder were cleaned.\n")
			if err := os.WriteFile(marker, content, 0o644); err != nil {
				return result, err
			}
		}
	}

	cfg.log.Info("cleanup done")

	return result, nil
}

// selectFiles lists all files in folders carrying one of the extensions,
// compared case-insensitively, sorted by path.
func selectFiles(folders, exts []string) ([]string, error) {
	var files []string
	for _, folder := range folders {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.TrimPrefix(filepath.Ext(e.Name()), ".")
			for _, want := range exts {
				if strings.EqualFold(ext, strings.TrimPrefix(want, ".")) {
					files = append(files, filepath.Join(folder, e.Name()))
					break
				}
			}
		}
	}
	sort.Strings(files)

	return files, nil
}
