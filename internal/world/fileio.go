package world

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// wrapPayload applies the file layout of spec §4.C: a leading flag byte
// (0 uncompressed, 1 compressed) and, when compressed, the advisory
// original size before the RLE payload.
func wrapPayload(data []byte, useCompression bool) []byte {
	if !useCompression {
		out := make([]byte, 1+len(data))
		out[0] = 0
		copy(out[1:], data)
		return out
	}

	compressed := compressRLE(data)
	out := make([]byte, 1+4+len(compressed))
	out[0] = 1
	binary.LittleEndian.PutUint32(out[1:], uint32(len(data)))
	copy(out[5:], compressed)
	return out
}

// unwrapPayload reverses wrapPayload. A short header is treated as
// "not present" and returns an empty buffer.
func unwrapPayload(wrapped []byte) []byte {
	if len(wrapped) < 1 {
		return nil
	}
	flag := wrapped[0]
	if flag == 0 {
		return wrapped[1:]
	}
	if len(wrapped) < 5 {
		return nil
	}
	return decompressRLE(wrapped[5:])
}

// writeFileAtomic creates any missing parent directories and writes data
// to path by writing to a temp file and renaming over the destination,
// so a crash mid-write never leaves a half-written chunk file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place %s: %w", path, err)
	}
	return nil
}

// readFileSoft reads path and returns its bytes. A missing file or any
// read error is treated as "not present": it returns a nil slice rather
// than propagating an error, matching spec §4.C's fail-soft read.
func readFileSoft(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// chunkFilePath returns the deterministic on-disk path for a chunk,
// spec §4.D: <saveDir>/chunks/c.<cx>.<cy>.<cz>.dat
func chunkFilePath(saveDir string, coord ChunkCoord) string {
	name := fmt.Sprintf("c.%d.%d.%d.dat", coord.X, coord.Y, coord.Z)
	return filepath.Join(saveDir, "chunks", name)
}
