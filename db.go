package main

import (
	"errors"
	"fmt"

	"git.mills.io/prologic/bitcask"
)

const usernameKey = "leetcode_username"

// usernameDB keeps the tracked username in a bitcask store.
type usernameDB struct {
	db *bitcask.Bitcask
}

func openUsernameDB(path string) (*usernameDB, error) {
	db, err := bitcask.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", path, err)
	}
	return &usernameDB{db: db}, nil
}

func (u *usernameDB) LoadUsername() (string, error) {
	value, err := u.db.Get([]byte(usernameKey))
	if errors.Is(err, bitcask.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (u *usernameDB) SaveUsername(username string) error {
	if username == "" {
		if err := u.db.Delete([]byte(usernameKey)); err != nil {
			return err
		}
	} else if err := u.db.Put([]byte(usernameKey), []byte(username)); err != nil {
		return err
	}
	return u.db.Sync()
}

func (u *usernameDB) Close() error { return u.db.Close() }
