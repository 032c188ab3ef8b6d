// Package persistence implements the on-disk framing for chunk bytes (C5):
// file naming, the optional length-prefixed compression wrapper, and
// directory management. It never interprets the payload — callers hand it
// already-serialized chunk bytes (header + RLE payload) from package chunk.
package persistence

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"voxelengine/internal/voxel"
)

// Store persists and retrieves a chunk's serialized bytes by position. The
// context lets a caller abandon a save or load before it starts; FileStore
// checks it only at entry, since the underlying os/zstd calls are not
// themselves cancellable mid-flight.
type Store interface {
	// Save writes data for pos, creating or truncating its file.
	Save(ctx context.Context, pos voxel.ChunkPos, data []byte) error
	// Load reads data for pos. hit is false (with a nil error) when no
	// file exists yet — a cache miss, not a failure.
	Load(ctx context.Context, pos voxel.ChunkPos) (data []byte, hit bool, err error)
}

// FileStore is the filesystem-backed Store: one file per chunk under a
// configured directory, optionally zstd-compressed.
type FileStore struct {
	dir      string
	compress bool

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewFileStore creates (recursively and idempotently) dir and returns a
// Store rooted there.
func NewFileStore(dir string, compress bool) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persistence: create save directory: %w", err)
	}
	fs := &FileStore{dir: dir, compress: compress}
	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("persistence: init encoder: %w", err)
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("persistence: init decoder: %w", err)
		}
		fs.enc, fs.dec = enc, dec
	}
	return fs, nil
}

// fileName renders "chunk_<x>_<y>_<z>.dat" with a sign-preserving decimal
// representation for each coordinate, so negative chunk positions never
// rely on the host's ambient integer-to-string conversion.
func fileName(pos voxel.ChunkPos) string {
	return fmt.Sprintf("chunk_%+d_%+d_%+d.dat", pos.X, pos.Y, pos.Z)
}

func (fs *FileStore) path(pos voxel.ChunkPos) string {
	return filepath.Join(fs.dir, fileName(pos))
}

// Save writes data (already header+RLE framed by package chunk) to disk,
// wrapping it in the length-prefixed compression envelope when enabled. The
// file handle is released on every exit path.
func (fs *FileStore) Save(ctx context.Context, pos voxel.ChunkPos, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(fs.path(pos), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("persistence: open for save: %w", err)
	}
	defer f.Close()

	if !fs.compress {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("persistence: write: %w", err)
		}
		return nil
	}

	compressed := fs.enc.EncodeAll(data, nil)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(compressed)))
	if _, err := f.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("persistence: write length prefix: %w", err)
	}
	if _, err := f.Write(compressed); err != nil {
		return fmt.Errorf("persistence: write compressed body: %w", err)
	}
	return nil
}

// Load reads back what Save wrote. A missing file is reported as
// hit=false, err=nil — the documented "no save on disk" outcome.
func (fs *FileStore) Load(ctx context.Context, pos voxel.ChunkPos) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	f, err := os.Open(fs.path(pos))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("persistence: open for load: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, false, fmt.Errorf("persistence: read: %w", err)
	}

	if !fs.compress {
		return raw, true, nil
	}

	if len(raw) < 4 {
		return nil, false, fmt.Errorf("persistence: truncated length prefix")
	}
	length := binary.LittleEndian.Uint32(raw[:4])
	body := raw[4:]
	if uint32(len(body)) < length {
		return nil, false, fmt.Errorf("persistence: truncated compressed body")
	}
	decoded, err := fs.dec.DecodeAll(body[:length], nil)
	if err != nil {
		return nil, false, fmt.Errorf("persistence: decompress: %w", err)
	}
	return decoded, true, nil
}

