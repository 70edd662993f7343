package oe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"

	"tmpfiles/internal/control"
	"tmpfiles/internal/model"
)

const Extension = `.txt`

const (
	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0644
)

// FsStore keeps entries as plain files in a single directory. There is no
// locking: concurrent writers to the same name race on the filesystem.
type FsStore struct {
	base   string
	logger control.Logger
	ops    *prometheus.CounterVec
}

var _ model.Store = (*FsStore)(nil)

// NewFsStore returns a store rooted at base. When registerer is nil no
// operation metrics are recorded.
func NewFsStore(base string, logger control.Logger, registerer prometheus.Registerer) FsStore {
	fs := FsStore{
		base:   filepath.Clean(base),
		logger: logger,
	}
	if registerer != nil {
		fs.ops = opsCounter(registerer)
	}
	return fs
}

func opsCounter(registerer prometheus.Registerer) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: `tmpfiles_store_operations_total`,
		Help: `A counter of store operations by outcome`,
	}, []string{`op`, `result`})
	if err := registerer.Register(counter); err != nil {
		var exists prometheus.AlreadyRegisteredError
		if errors.As(err, &exists) {
			if existing, ok := exists.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		return nil
	}
	return counter
}

func (fs FsStore) Base() string {
	return fs.base
}

func (fs FsStore) observe(op string, err error) {
	if fs.ops == nil {
		return
	}
	result := `ok`
	if err != nil {
		result = `error`
	}
	fs.ops.WithLabelValues(op, result).Inc()
}

// fail wraps err in kind and logs it at the origin.
func (fs FsStore) fail(kind error, err error) error {
	return fs.report(fmt.Errorf(`%w: %w`, kind, err))
}

func (fs FsStore) report(err error) error {
	fs.logger.Error(`store: %s`, err)
	return err
}

// Resolve maps a user supplied name onto a path directly inside the store
// directory. Anything else, including the directory itself, is rejected.
func (fs FsStore) Resolve(name string) (string, error) {
	target := filepath.Join(fs.base, name)
	rel, err := filepath.Rel(fs.base, target)
	if err != nil {
		return ``, fmt.Errorf(`%w: "%s": %w`, model.ErrInvalidName, name, err)
	}
	if rel == `.` || rel == `..` || strings.ContainsRune(rel, filepath.Separator) {
		return ``, fmt.Errorf(`%w: "%s"`, model.ErrInvalidName, name)
	}
	return target, nil
}

func (fs FsStore) EnsureExists() (err error) {
	defer func() { fs.observe(`ensure`, err) }()
	if err := os.MkdirAll(fs.base, dirMode); err != nil {
		return fs.fail(model.ErrStoreUnavailable, err)
	}
	return nil
}

// List returns entry names in directory order; no sorting is applied.
func (fs FsStore) List() (names []string, err error) {
	if err := fs.EnsureExists(); err != nil {
		return nil, err
	}
	defer func() { fs.observe(`list`, err) }()
	dir, err := os.Open(fs.base)
	if err != nil {
		return nil, fs.fail(model.ErrStoreUnavailable, err)
	}
	defer dir.Close()
	names, err = dir.Readdirnames(-1)
	if err != nil {
		return nil, fs.fail(model.ErrStoreUnavailable, err)
	}
	return names, nil
}

func (fs FsStore) Read(name string) (entry model.Entry, err error) {
	defer func() { fs.observe(`read`, err) }()
	target, err := fs.Resolve(name)
	if err != nil {
		return model.Entry{}, fs.fail(model.ErrFileUnreadable, err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return model.Entry{}, fs.fail(model.ErrFileUnreadable, err)
	}
	if !utf8.Valid(data) {
		return model.Entry{}, fs.fail(model.ErrFileUnreadable, fmt.Errorf(`%s: content is not utf-8 text`, target))
	}
	return model.Entry{Name: name, Content: string(data)}, nil
}

// Rename moves previous onto next, replacing next if it exists.
func (fs FsStore) Rename(previous string, next string) (err error) {
	defer func() { fs.observe(`rename`, err) }()
	from, err := fs.Resolve(previous)
	if err != nil {
		return fs.fail(model.ErrRenameFailed, err)
	}
	to, err := fs.Resolve(next)
	if err != nil {
		return fs.fail(model.ErrRenameFailed, err)
	}
	if err := os.Rename(from, to); err != nil {
		return fs.fail(model.ErrRenameFailed, err)
	}
	return nil
}

// Create writes details to the file named after title, overwriting any
// existing entry of that name. The derived name is returned.
func (fs FsStore) Create(title string, details string) (name string, err error) {
	defer func() { fs.observe(`create`, err) }()
	name = FileName(title)
	if err := fs.write(name, details); err != nil {
		return ``, fs.fail(model.ErrCreateFailed, err)
	}
	return name, nil
}

func (fs FsStore) Write(name string, content string) (err error) {
	defer func() { fs.observe(`write`, err) }()
	if err := fs.write(name, content); err != nil {
		return fs.report(err)
	}
	return nil
}

// write is Write without logging or metrics, for callers that report the
// failure under their own kind.
func (fs FsStore) write(name string, content string) error {
	target, err := fs.Resolve(name)
	if err != nil {
		return fmt.Errorf(`%w: %w`, model.ErrWriteFailed, err)
	}
	if err := os.WriteFile(target, []byte(content), fileMode); err != nil {
		return fmt.Errorf(`%w: %w`, model.ErrWriteFailed, err)
	}
	return nil
}

// FileName drops every whitespace rune from title and appends Extension.
func FileName(title string) string {
	return strings.Join(strings.Fields(title), ``) + Extension
}
