package relinka

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// logFilePath resolves the destination file for records written at t.
// Relative paths are joined to baseDir; date naming inserts YYYY-MM-DD
// before or after the base name.
func logFilePath(cfg *Config, baseDir string, t time.Time) string {
	path := strings.TrimSpace(cfg.LogFilePath)
	if path == "" {
		path = defaultLogFileName
	}

	dir, name := filepath.Split(path)
	if !strings.HasSuffix(name, logExtension) {
		name += logExtension
	}

	date := t.Format("2006-01-02")
	stem := strings.TrimSuffix(name, logExtension)
	switch cfg.NameWithDate {
	case NameWithDateAppendBefore:
		name = date + "-" + stem + logExtension
	case NameWithDateAppendAfter:
		name = stem + "-" + date + logExtension
	}

	full := filepath.Join(dir, name)
	if filepath.IsAbs(full) {
		return full
	}
	root := cfg.BaseDir
	if root == "" {
		root = baseDir
	}
	return filepath.Join(root, full)
}

// appendToFile appends data to path, creating parent directories and the file
func appendToFile(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", filepath.Dir(path), err)
	}

	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmtErrorf("failed to open log file '%s': %w", path, err)
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil {
		return fmtErrorf("failed to write log file '%s': %w", path, writeErr)
	}
	if closeErr != nil {
		return fmtErrorf("failed to close log file '%s': %w", path, closeErr)
	}
	return nil
}

// truncateFile empties path, creating it when missing
func truncateFile(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", filepath.Dir(path), err)
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return fmtErrorf("failed to truncate log file '%s': %w", path, err)
	}
	return f.Close()
}

// scanLogFiles lists *.log files in dir and in its direct subdirectories,
// newest first. Entries that cannot be stat'd are skipped.
func scanLogFiles(fs afero.Fs, dir string) ([]LogFileInfo, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmtErrorf("failed to read log directory '%s': %w", dir, err)
	}

	var files []LogFileInfo
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			subEntries, err := afero.ReadDir(fs, path)
			if err != nil {
				continue
			}
			for _, sub := range subEntries {
				if info, ok := logFileInfo(fs, filepath.Join(path, sub.Name())); ok {
					files = append(files, info)
				}
			}
			continue
		}
		if info, ok := logFileInfo(fs, path); ok {
			files = append(files, info)
		}
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].ModTime.After(files[j].ModTime) })
	return files, nil
}

func logFileInfo(fs afero.Fs, path string) (LogFileInfo, bool) {
	if !strings.HasSuffix(path, logExtension) {
		return LogFileInfo{}, false
	}
	stat, err := fs.Stat(path)
	if err != nil || !stat.Mode().IsRegular() {
		return LogFileInfo{}, false
	}
	return LogFileInfo{Path: path, ModTime: stat.ModTime()}, true
}
