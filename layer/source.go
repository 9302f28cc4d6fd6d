package layer

import (
	"bytes"
	"os"
)

// FileLayer is a file-backed source layer: a single data fork with no
// metadata. Grounded on original_source/lib/munbox.c's
// munbox_new_file_layer/file_layer_read/file_layer_open, translated from an
// fopen/fread/fseek triad into os.File plus an explicit "opened" flag.
type FileLayer struct {
	f      *os.File
	opened bool
}

// OpenFile opens path and wraps it in a FileLayer. The caller owns the
// returned Layer and must Close it.
func OpenFile(path string) (*FileLayer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewError(KindIO, err, "could not open file %q", path)
	}
	return &FileLayer{f: f}, nil
}

func (l *FileLayer) Open(mode OpenMode) (*FileInfo, error) {
	if mode == OpenNext {
		if !l.opened {
			return nil, NewError(KindBadParameter, nil, "open(next) before open(first)")
		}
		return nil, nil
	}
	if _, err := l.f.Seek(0, 0); err != nil {
		return nil, NewError(KindIO, err, "seeking file to start")
	}
	l.opened = true
	info, err := l.fileInfo()
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (l *FileLayer) fileInfo() (*FileInfo, error) {
	fi, err := l.f.Stat()
	if err != nil {
		return nil, NewError(KindIO, err, "statting file")
	}
	return &FileInfo{ForkKind: ForkData, Length: uint32(fi.Size())}, nil
}

func (l *FileLayer) Read(p []byte) (int, error) {
	if !l.opened {
		return 0, ErrReadBeforeOpen
	}
	return l.f.Read(p)
}

func (l *FileLayer) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// MemLayer is a memory-backed source layer: a single data fork over an
// already-resident buffer. Grounded on munbox_new_mem_layer/mem_layer_read/
// mem_layer_open; rewind on Open(OpenFirst) is a pos reset rather than a
// seek, and there is no file descriptor to release on Close.
type MemLayer struct {
	r      *bytes.Reader
	opened bool
}

// NewMem wraps buf (not copied) in a MemLayer.
func NewMem(buf []byte) *MemLayer {
	return &MemLayer{r: bytes.NewReader(buf)}
}

func (l *MemLayer) Open(mode OpenMode) (*FileInfo, error) {
	if mode == OpenNext {
		if !l.opened {
			return nil, NewError(KindBadParameter, nil, "open(next) before open(first)")
		}
		return nil, nil
	}
	if _, err := l.r.Seek(0, 0); err != nil {
		return nil, NewError(KindIO, err, "rewinding memory buffer")
	}
	l.opened = true
	return &FileInfo{ForkKind: ForkData, Length: uint32(l.r.Size())}, nil
}

func (l *MemLayer) Read(p []byte) (int, error) {
	if !l.opened {
		return 0, ErrReadBeforeOpen
	}
	return l.r.Read(p)
}

func (l *MemLayer) Close() error { return nil }
