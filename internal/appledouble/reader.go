package appledouble

import (
	"io"
	"io/fs"
)

// reader matches WithSequentialResourceFork's opener func() io.Reader
// exactly: a lazy fork source with no error return, since the caller already
// knows the fork's size up front and any read failure surfaces through the
// wrapped Reader's own Read error instead of a second channel.
type reader struct {
	ad     []byte
	zero   int
	opener func() io.Reader
	fork   io.Reader
}

func (r *reader) Read(p []byte) (n int, err error) {
	switch {
	case len(r.ad) > 0:
		n = copy(p, r.ad)
		r.ad = r.ad[n:]
		return n, nil
	case r.zero > 0:
		n = min(len(p), r.zero)
		r.zero -= n
		clear(p[:n])
		return n, nil
	default:
		if r.fork == nil {
			r.fork = r.opener()
		}
		return r.fork.Read(p)
	}
}

func (r *reader) Close() error {
	if c, ok := r.fork.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type readerAt struct {
	ad   []byte
	fork io.ReaderAt
}

func (r *readerAt) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, fs.ErrInvalid
	}
	if off < int64(len(r.ad)) {
		n = copy(p, r.ad[int(off):])
	}
	if n == len(p) {
		return n, nil
	}
	askoff := max(0, off-int64(len(r.ad)))
	fn, err := r.fork.ReadAt(p[n:], askoff)
	n += fn
	return n, err
}
