package source

import (
	"context"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// followReader blocks at EOF until the file is written again. It returns
// io.EOF when the context is done or the file is removed or renamed.
type followReader struct {
	ctx     context.Context
	fd      *os.File
	watcher *fsnotify.Watcher
}

func openFollow(ctx context.Context, path string) (io.ReadCloser, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to open log file: %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fd.Close()
		return nil, errors.Wrap(err, "Fail to create file watcher")
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		fd.Close()
		return nil, errors.Wrapf(err, "Fail to watch log file: %s", path)
	}

	logger.WithField("path", path).Debug("Following log file")

	return &followReader{ctx: ctx, fd: fd, watcher: watcher}, nil
}

func (x *followReader) Read(p []byte) (int, error) {
	for {
		n, err := x.fd.Read(p)
		if n > 0 {
			return n, nil
		}
		if err != nil && err != io.EOF {
			return 0, err
		}

		select {
		case <-x.ctx.Done():
			return 0, io.EOF

		case ev, ok := <-x.watcher.Events:
			if !ok {
				return 0, io.EOF
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.WithField("event", ev.String()).Info("Log file is moved, stop following")
				return 0, io.EOF
			}

		case err, ok := <-x.watcher.Errors:
			if !ok {
				return 0, io.EOF
			}
			return 0, errors.Wrap(err, "File watcher error")
		}
	}
}

func (x *followReader) Close() error {
	x.watcher.Close()
	return x.fd.Close()
}
