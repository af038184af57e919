package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"commentboard/app/config"
	"commentboard/app/repositories"
)

// Console streams; nil means the process's os.Stdout and os.Stdin at the
// time of use. Tests swap them.
var (
	stdout io.Writer
	stdin  io.Reader
)

func output() io.Writer {
	if stdout != nil {
		return stdout
	}
	return os.Stdout
}

func input() io.Reader {
	if stdin != nil {
		return stdin
	}
	return os.Stdin
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(output(), format, args...)
}

func printLine(args ...interface{}) {
	fmt.Fprintln(output(), args...)
}

// confirm asks a yes/no question; anything but y or Y is a no.
func confirm(question string) bool {
	printf("%s [y/N] ", question)
	line, err := bufio.NewReader(input()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

// databaseExists reports whether the configured storage has files on disk.
func databaseExists(cfg config.StorageConfig) bool {
	_, err := os.Stat(cfg.Path)
	return err == nil
}

// removeDatabase deletes the storage files, sqlite side files included.
func removeDatabase(cfg config.StorageConfig) error {
	if cfg.Driver == repositories.DriverSQLite {
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(cfg.Path + suffix); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
		return nil
	}
	return os.RemoveAll(cfg.Path)
}

func openStorage(cfg config.StorageConfig) (repositories.Storage, error) {
	storage, err := repositories.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage at %s: %w", cfg.Driver, cfg.Path, err)
	}
	return storage, nil
}
