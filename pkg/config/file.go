package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/handfix/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		ReloadEvery:        ptr.To(60),
		AsyncReload:        ptr.To(true),
		RefreshSchedule:    ptr.To(""),
		AllowNonRootAccess: ptr.To(false),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// NewFile loads the config at configPath. A missing or empty file yields
// the defaults.
func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

type RawFileConfig struct {
	ReloadEvery        *int    `json:"reloadEvery,omitempty"`
	AsyncReload        *bool   `json:"asyncReload,omitempty"`
	RefreshSchedule    *string `json:"refreshSchedule,omitempty"`
	AllowNonRootAccess *bool   `json:"allowNonRootAccess,omitempty"`
}

// NewRawFileConfigFromConfig returns the effective values of c, defaults
// filled in.
func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	return &RawFileConfig{
		ReloadEvery:        ptr.To(c.ReloadEvery()),
		AsyncReload:        ptr.To(c.AsyncReload()),
		RefreshSchedule:    ptr.To(c.RefreshSchedule()),
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
	}, nil
}

func (f *File) ReloadEvery() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := ptr.Deref(f.c.ReloadEvery, *defaultFileConfig.ReloadEvery)
	if n < 0 || n > 65535 {
		logrus.Warnf("reloadEvery %d out of range, using %d", n, *defaultFileConfig.ReloadEvery)
		return *defaultFileConfig.ReloadEvery
	}
	return n
}

func (f *File) AsyncReload() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.AsyncReload, *defaultFileConfig.AsyncReload)
}

func (f *File) RefreshSchedule() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.RefreshSchedule, *defaultFileConfig.RefreshSchedule)
}

func (f *File) AllowNonRootAccess() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.AllowNonRootAccess, *defaultFileConfig.AllowNonRootAccess)
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing file means defaults. Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"reloadEvery":        f.ReloadEvery(),
		"asyncReload":        f.AsyncReload(),
		"refreshSchedule":    f.RefreshSchedule(),
		"allowNonRootAccess": f.AllowNonRootAccess(),
	}
}
