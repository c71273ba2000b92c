package repository

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"luxeStore/models"

	"github.com/sirupsen/logrus"
)

// FileStateRepo writes one <name>.json file per state into dir. Writes go
// through a temp file and rename so a crash never leaves half a blob.
type FileStateRepo struct {
	dir string
	mu  sync.Mutex
}

func NewFileStateRepository(dir string) (StateRepository, error) {
	if dir == "" {
		return nil, errors.New("state directory must be set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStateRepo{dir: dir}, nil
}

func (f *FileStateRepo) path(name string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_").Replace(name)
	return filepath.Join(f.dir, safe+".json")
}

func (f *FileStateRepo) LoadState(name string) (state models.PersistedState, exists bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, e := os.ReadFile(f.path(name))
	if e != nil {
		if errors.Is(e, os.ErrNotExist) {
			return
		}
		logrus.Errorf("LoadState: %v", e)
		err = models.ErrServerError
		return
	}
	state, exists = decodeState(name, data)
	return
}

func (f *FileStateRepo) SaveState(name string, state models.PersistedState) (err error) {
	data, err := encodeState(state)
	if err != nil {
		logrus.Errorf("SaveState: Marshal: %v", err)
		err = models.ErrServerError
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	target := f.path(name)
	tmp, err := os.CreateTemp(f.dir, ".state-*")
	if err != nil {
		logrus.Errorf("SaveState: %v", err)
		err = models.ErrServerError
		return
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		logrus.Errorf("SaveState: write %s: %v %v", target, werr, cerr)
		err = models.ErrServerError
		return
	}
	if e := os.Rename(tmp.Name(), target); e != nil {
		os.Remove(tmp.Name())
		logrus.Errorf("SaveState: rename: %v", e)
		err = models.ErrServerError
	}
	return
}

func (f *FileStateRepo) DeleteState(name string) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e := os.Remove(f.path(name)); e != nil && !errors.Is(e, os.ErrNotExist) {
		logrus.Errorf("DeleteState: %v", e)
		err = models.ErrServerError
	}
	return
}
