package load

import (
	"accircuit/types"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change 电路文件变化后重新加载的结果
type Change struct {
	File    string         // 文件路径
	Network *types.Network // 加载成功时的网络
	Err     error          // 加载失败或文件被删除
}

// Watcher 监视单个电路文件, 变化经过去抖后重新加载
// 监视所在目录, 兼容编辑器先写临时文件再改名的保存方式。
type Watcher struct {
	File    string
	Changes <-chan Change // 只读的外部通道

	changes  chan Change
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher 创建文件监视, debounce 为最短静默间隔
func NewWatcher(file string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	ch := make(chan Change, 16)
	return &Watcher{
		File:     abs,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: debounce,
	}, nil
}

// Start 开始监视
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop 关闭监视并关闭 Changes 通道
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var last time.Time
	pending := false
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if pending {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				last, pending = time.Now(), true
			}

		case <-ticker.C:
			if pending && time.Since(last) >= w.debounce {
				w.emit()
				pending = false
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) emit() {
	net, err := ReadFile(w.File)
	w.changes <- Change{File: w.File, Network: net, Err: err}
}
