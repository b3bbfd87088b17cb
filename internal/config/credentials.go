package config

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "stillmove"
	keyringUser    = "postgres-dsn"
)

// SetDSN stores the postgres connection string in the OS keyring.
func SetDSN(dsn string) error {
	if dsn == "" {
		return errEmptyDSN
	}

	err := keyring.Set(keyringService, keyringUser, dsn)
	if err != nil {
		return errKeyringUnavailable.Wrap(err)
	}

	return nil
}

// DeleteDSN removes the stored connection string.
func DeleteDSN() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNoCredentials
	}

	if err != nil {
		return errKeyringUnavailable.Wrap(err)
	}

	return nil
}

// ResolveDSN returns the configured connection string. For postgres an empty
// value falls back to the OS keyring.
func (c *Config) ResolveDSN() (string, error) {
	if c.Storage.DSN != "" || c.Storage.Driver != DriverPostgres {
		return c.Storage.DSN, nil
	}

	dsn, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoCredentials
	}

	if err != nil {
		return "", errKeyringUnavailable.Wrap(err)
	}

	return dsn, nil
}
