package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Data file names, one per collection, in load order.
const (
	ActivitiesFile = "activities.json"
	CustomersFile  = "customers.json"
	PackagesFile   = "packages.json"
	BookingsFile   = "bookings.json"
	ReviewsFile    = "reviews.json"
)

// DataFiles lists the five data files in dependency (load) order.
func DataFiles() []string {
	return []string{ActivitiesFile, CustomersFile, PackagesFile, BookingsFile, ReviewsFile}
}

// readRecords decodes the JSON array stored at path.
// A missing file is not an error: found is false and records is nil.
func readRecords[T any](path string) (records []T, found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return records, true, nil
}

// writeRecords encodes records as an indented JSON array and replaces the
// file at path atomically: the bytes go to a temp file in the same directory
// which is then renamed over the target. A failed write leaves the previous
// file intact.
func writeRecords[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
