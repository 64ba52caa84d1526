package lsp

import (
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"bslint/internal/project"
)

// configDebounce склеивает серию событий одного сохранения (write, chmod,
// rename у редакторов с атомарной записью) в одну перезагрузку.
const configDebounce = 100 * time.Millisecond

// configWatcher следит за каталогом конфигурации: файл может появиться,
// исчезнуть или быть подменён через rename, поэтому смотрим на каталог.
type configWatcher struct {
	w        *fsnotify.Watcher
	dir      string
	onChange func()

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newConfigWatcher(dir string, onChange func()) (*configWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	cw := &configWatcher{w: w, dir: dir, onChange: onChange, done: make(chan struct{})}
	cw.wg.Add(1)
	go cw.loop()
	return cw, nil
}

func isConfigEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(project.ConfigNames, filepath.Base(ev.Name))
}

func (cw *configWatcher) loop() {
	defer cw.wg.Done()
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-cw.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-cw.w.Events:
			if !ok {
				return
			}
			if !isConfigEvent(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(configDebounce)
			} else {
				timer.Reset(configDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cw.onChange()
		case _, ok := <-cw.w.Errors:
			if !ok {
				return
			}
		}
	}
}

func (cw *configWatcher) Close() error {
	var err error
	cw.stopOnce.Do(func() {
		close(cw.done)
		err = cw.w.Close()
		cw.wg.Wait()
	})
	return err
}

// startWatcher watches the directory of the configuration file, or the
// configuration root when no file exists yet.
func (s *Server) startWatcher(configPath, configRoot string) {
	dir := configRoot
	if configPath != "" {
		dir = filepath.Dir(configPath)
	}
	if dir == "" {
		return
	}
	s.stopWatcher()
	cw, err := newConfigWatcher(dir, s.reloadConfig)
	if err != nil {
		s.log.WithError(err).WithField("dir", dir).Warn("config watcher not started")
		return
	}
	s.mu.Lock()
	s.watcher = cw
	s.mu.Unlock()
	s.log.WithField("dir", dir).Debug("watching configuration")
}

func (s *Server) stopWatcher() {
	s.mu.Lock()
	cw := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if cw != nil {
		_ = cw.Close()
	}
}

// reloadConfig перечитывает конфигурацию, сбрасывает кеш метаданных и
// переопубликовывает диагностики открытых документов.
func (s *Server) reloadConfig() {
	s.mu.Lock()
	explicit := s.explicitPath
	dir := ""
	if s.watcher != nil {
		dir = s.watcher.dir
	}
	s.mu.Unlock()

	cfg, _, err := resolveConfig(explicit, dir)
	if err != nil {
		s.log.WithError(err).Warn("configuration reload failed, keeping defaults")
	}
	s.mu.Lock()
	s.fileConfig = cfg
	s.mu.Unlock()

	s.registry.InvalidateConfiguration()
	s.reconfigure()
	s.log.WithField("config", cfg.Path).Info("configuration reloaded")
	s.republishAll()
}
