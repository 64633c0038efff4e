// Package download implements resumable archive downloads. The manager decides,
// from local file state and the remote archive size, whether to skip, restart,
// or resume a transfer, and streams bytes accordingly. It performs no retries;
// retry policy belongs to the caller.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	pkgerrors "github.com/glorpus-work/mlcat/pkg/errors"
	"github.com/glorpus-work/mlcat/pkg/fsutil"
)

// DefaultArchiveExt is the filename extension of collection archives.
const DefaultArchiveExt = ".tar.gz"

// Manager downloads collection archives through an ArchiveSource.
type Manager struct {
	source ArchiveSource
	ext    string
}

// transferPlan is the per-call transfer decision. It is computed fresh on every
// Fetch and never stored.
type transferPlan struct {
	skip     bool
	offset   int64
	truncate bool
}

// NewManager creates a download manager reading from the given source.
func NewManager(source ArchiveSource) *Manager {
	return &Manager{source: source, ext: DefaultArchiveExt}
}

// Fetch downloads the archive for collectionID into opts.Dir and returns the
// local path. The remote size is always resolved first, so a missing archive
// fails before any local file is created or modified. A transfer aborted
// mid-stream leaves the partial file in place for a later resume.
func (m *Manager) Fetch(ctx context.Context, collectionID string, opts Options) (string, error) {
	if opts.Dir == "" || !filepath.IsAbs(opts.Dir) {
		return "", fmt.Errorf("download dir must be absolute: %w: %s", pkgerrors.ErrInvalidPath, opts.Dir)
	}
	if err := fsutil.EnsureDir(opts.Dir); err != nil {
		return "", pkgerrors.Wrap(err, "could not create download dir")
	}

	targetPath := filepath.Join(opts.Dir, collectionID+m.ext)

	remoteSize, err := m.source.ArchiveInfo(ctx, collectionID)
	if err != nil {
		return "", err
	}

	localSize, exists, err := fsutil.FileSize(targetPath)
	if err != nil {
		return "", pkgerrors.Wrap(err, "could not stat target file")
	}

	plan := planTransfer(exists, localSize, remoteSize, opts.Mode)
	if plan.skip {
		return targetPath, nil
	}

	if err := m.transfer(ctx, collectionID, targetPath, remoteSize, plan, opts); err != nil {
		return "", err
	}
	return targetPath, nil
}

// planTransfer derives the transfer decision from local file presence and size,
// the remote size, and the requested mode.
func planTransfer(exists bool, localSize, remoteSize int64, mode Mode) transferPlan {
	if !exists {
		return transferPlan{truncate: true}
	}
	switch mode {
	case ModeSkip:
		return transferPlan{skip: true}
	case ModeOverwrite:
		return transferPlan{truncate: true}
	default: // ModeResume
		if localSize >= remoteSize {
			// Treated as already complete; overwrite is the recovery path for a
			// file of the right size but wrong content.
			return transferPlan{skip: true}
		}
		return transferPlan{offset: localSize}
	}
}

func (m *Manager) transfer(ctx context.Context, collectionID, targetPath string, remoteSize int64, plan transferPlan, opts Options) error {
	body, err := m.source.FetchArchive(ctx, collectionID, plan.offset)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	flags := os.O_WRONLY | os.O_CREATE
	if plan.truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	file, err := os.OpenFile(targetPath, flags, fsutil.FileModeDefault)
	if err != nil {
		return pkgerrors.Wrap(err, "could not open target file")
	}

	var dst io.Writer = file
	if opts.OnProgress != nil {
		dst = io.MultiWriter(file, &progressWriter{
			written: plan.offset,
			total:   remoteSize,
			notify:  opts.OnProgress,
		})
	}

	if _, err := io.Copy(dst, body); err != nil {
		// The partial file stays on disk so a later resume can continue.
		_ = file.Close()
		return fmt.Errorf("streaming %s: %w: %w", collectionID, pkgerrors.ErrDownloadFailed, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return pkgerrors.Wrap(err, "could not sync file")
	}
	if err := file.Close(); err != nil {
		return pkgerrors.Wrap(err, "could not close file")
	}
	return nil
}

// progressWriter reports cumulative progress after every chunk.
type progressWriter struct {
	written int64
	total   int64
	notify  func(written, total int64)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	w.notify(w.written, w.total)
	return len(p), nil
}
