//go:generate mockgen -destination=./mocks/download.go . ArchiveSource
package download

import (
	"context"
	"io"
)

// ArchiveSource supplies remote archive metadata and content. It is implemented
// by the API client; the manager itself never builds HTTP requests.
type ArchiveSource interface {
	// ArchiveInfo resolves the total size in bytes of the archive for the given
	// collection id. A missing archive is reported via the source's not-found error.
	ArchiveInfo(ctx context.Context, collectionID string) (int64, error)

	// FetchArchive opens a streamed read of the archive content starting at the
	// given byte offset. Offset zero requests the full content.
	FetchArchive(ctx context.Context, collectionID string, offset int64) (io.ReadCloser, error)
}

// Mode selects how an existing local file is treated relative to the remote archive.
type Mode int

// Transfer modes. The zero value resumes partial downloads.
const (
	ModeResume Mode = iota
	ModeSkip
	ModeOverwrite
)

// String returns the mode's CLI-facing name.
func (m Mode) String() string {
	switch m {
	case ModeSkip:
		return "skip"
	case ModeOverwrite:
		return "overwrite"
	default:
		return "resume"
	}
}

// ParseMode converts a CLI-facing mode name into a Mode.
func ParseMode(raw string) (Mode, error) {
	switch raw {
	case "resume", "":
		return ModeResume, nil
	case "skip":
		return ModeSkip, nil
	case "overwrite":
		return ModeOverwrite, nil
	default:
		return ModeResume, ErrUnknownMode(raw)
	}
}

// Options control the behavior of a single archive download.
type Options struct {
	// Dir is the destination directory. Must be absolute. Created if absent.
	Dir string

	// Mode selects the transfer policy for an existing local file.
	Mode Mode

	// OnProgress, when set, is invoked after every chunk written with the total
	// bytes present locally and the remote archive size.
	OnProgress func(written, total int64)
}
