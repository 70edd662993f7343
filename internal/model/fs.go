package model

import (
	"errors"
)

var (
	ErrStoreUnavailable = errors.New(`unable to read directory`)
	ErrFileUnreadable   = errors.New(`unable to read file`)
	ErrRenameFailed     = errors.New(`unable to rename file`)
	ErrCreateFailed     = errors.New(`unable to create file`)
	ErrWriteFailed      = errors.New(`unable to write file`)
	ErrInvalidName      = errors.New(`invalid file name`)
)

// Entry is a single text file in the store.
type Entry struct {
	Name    string
	Content string
}

type Store interface {
	EnsureExists() error
	List() ([]string, error)
	Read(name string) (Entry, error)
	Rename(previous string, next string) error
	Create(title string, details string) (string, error)
	Write(name string, content string) error
}
