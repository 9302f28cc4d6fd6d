package layer

import (
	"errors"
	"slices"
	"testing"
)

type stubLayer struct {
	opens int
}

func (s *stubLayer) Open(mode OpenMode) (*FileInfo, error) {
	s.opens++
	if mode == OpenNext {
		return nil, nil
	}
	return &FileInfo{ForkKind: ForkData, Length: 1}, nil
}
func (s *stubLayer) Read(p []byte) (int, error) { return 0, nil }
func (s *stubLayer) Close() error               { return nil }

func TestDriveChainsUntilNoFactoryMatches(t *testing.T) {
	var order []string

	wrapOnce := func(name string, limit int) Factory {
		calls := 0
		return func(in Layer) (Layer, error) {
			calls++
			order = append(order, name)
			if calls > limit {
				return nil, nil
			}
			return in, nil
		}
	}

	factories := []Factory{
		wrapOnce("a", 0),
		wrapOnce("b", 2),
		wrapOnce("c", 0),
	}

	result, err := Drive(&stubLayer{}, factories)
	if err != nil {
		t.Fatal(err)
	}
	if result == nil {
		t.Fatal("expected a layer back")
	}
	// "b" must be retried against the full registry after each of its own
	// matches, since Drive has no terminal/transform distinction; it keeps
	// matching "b" (limit 2) twice before the loop falls through to "c" and
	// then finds nothing left to match.
	if want := []string{"a", "b", "a", "b", "a", "b", "c"}; !slices.Equal(order, want) {
		t.Fatalf("expected factory order %v, got %v", want, order)
	}
}

func TestDrivePropagatesHardError(t *testing.T) {
	wantErr := errors.New("boom")
	factories := []Factory{
		func(in Layer) (Layer, error) { return nil, wantErr },
	}
	_, err := Drive(&stubLayer{}, factories)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func TestDriveNoMatchReturnsInputUnchanged(t *testing.T) {
	in := &stubLayer{}
	declineAll := func(in Layer) (Layer, error) { return nil, nil }
	out, err := Drive(in, []Factory{declineAll, declineAll})
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("expected passthrough of the original layer, got %v", out)
	}
}

func TestIsFormatUnrecognized(t *testing.T) {
	err := NewError(KindFormatUnrecognized, nil, "not a sit archive")
	if !IsFormatUnrecognized(err) {
		t.Error("expected KindFormatUnrecognized error to be recognized as a decline")
	}
	if IsFormatUnrecognized(errors.New("some other error")) {
		t.Error("unrelated error should not be recognized as a decline")
	}
	if IsFormatUnrecognized(nil) {
		t.Error("nil should not be recognized as a decline")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("short read")
	err := NewError(KindTruncatedInput, cause, "reading header")
	if !errors.Is(err, cause) {
		t.Error("expected Error to unwrap to its cause")
	}
}
