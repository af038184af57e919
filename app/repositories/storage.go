package repositories

import "fmt"

const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Open opens the storage backend named by driver at path.
func Open(driver, path string) (Storage, error) {
	switch driver {
	case DriverBadger, "":
		repo, err := NewRepository(path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case DriverSQLite:
		store, err := NewSQLiteStorage(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
