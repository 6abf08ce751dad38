package streamlite

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses bursts of events from a single save
const DefaultDebounce = 50 * time.Millisecond

// FileConnector watches a single file and calls OnChange after it is
// written, created, renamed over or removed. The parent directory is
// watched so that editors replacing the file by rename are still seen.
type FileConnector struct {
	*BaseConnector

	path     string
	onChange func(path string)
	debounce time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewFileConnector creates a connector for path
func NewFileConnector(path string, onChange func(path string), logger zerolog.Logger) *FileConnector {
	return &FileConnector{
		BaseConnector: NewBaseConnector("file:" + path),
		path:          path,
		onChange:      onChange,
		debounce:      DefaultDebounce,
		logger:        logger,
	}
}

// SetDebounce sets the quiet period before OnChange fires. Call before Start.
func (c *FileConnector) SetDebounce(d time.Duration) {
	if d > 0 {
		c.debounce = d
	}
}

// Start begins watching
func (c *FileConnector) Start() error {
	abs, err := filepath.Abs(c.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", c.path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	c.mu.Lock()
	c.watcher = fw
	c.done = make(chan struct{})
	c.mu.Unlock()

	_ = c.BaseConnector.Start()

	c.wg.Add(1)
	go c.loop(fw, abs)
	return nil
}

// Stop ends watching and waits for the event loop to exit
func (c *FileConnector) Stop() error {
	c.mu.Lock()
	fw := c.watcher
	if fw == nil {
		c.mu.Unlock()
		return nil
	}
	c.watcher = nil
	close(c.done)
	if c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()

	err := fw.Close()
	c.wg.Wait()
	return err
}

func (c *FileConnector) loop(fw *fsnotify.Watcher, target string) {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				c.schedule(target)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			c.logger.Warn().Err(err).Str("path", target).Msg("watch error")
		}
	}
}

// schedule (re)arms the debounce timer
func (c *FileConnector) schedule(target string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher == nil {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		select {
		case <-c.done:
			return
		default:
		}
		c.onChange(target)
	})
}
