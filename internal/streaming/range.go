package streaming

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnsatisfiable indicates that a Range header was present but cannot be
// satisfied against the file's size. The response is 416 with
// "Content-Range: bytes */<size>".
var ErrUnsatisfiable = errors.New("unsatisfiable range")

// ByteRange is one satisfiable byte span, inclusive on both ends.
// Invariant: 0 <= Start <= End < size of the file it was parsed against.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the range covers.
func (b ByteRange) Length() int64 {
	return b.End - b.Start + 1
}

// ParseRange parses a Range header value against a file size.
//
// Supported forms: "bytes=start-end", "bytes=start-" (to EOF), and
// "bytes=-suffix" (last suffix bytes). A missing header returns (nil, nil),
// meaning the whole file. Multiple comma-separated ranges, non-bytes units,
// and malformed values are all treated as unsatisfiable rather than
// silently ignored.
func ParseRange(header string, size int64) (*ByteRange, error) {
	if header == "" {
		return nil, nil
	}
	if !strings.HasPrefix(strings.ToLower(header), "bytes=") {
		return nil, ErrUnsatisfiable
	}
	spec := strings.TrimSpace(header[len("bytes="):])
	if strings.Contains(spec, ",") {
		// Only a single range is supported; multipart/byteranges is not.
		return nil, ErrUnsatisfiable
	}
	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, ErrUnsatisfiable
	}

	var start, end int64
	if startStr == "" {
		// Suffix form: last N bytes.
		suffix, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || suffix <= 0 {
			return nil, ErrUnsatisfiable
		}
		start = size - suffix
		if start < 0 {
			start = 0
		}
		end = size - 1
	} else {
		var err error
		start, err = strconv.ParseInt(startStr, 10, 64)
		if err != nil {
			return nil, ErrUnsatisfiable
		}
		if endStr == "" {
			end = size - 1
		} else {
			end, err = strconv.ParseInt(endStr, 10, 64)
			if err != nil {
				return nil, ErrUnsatisfiable
			}
		}
	}

	if start < 0 || end < start || start >= size {
		return nil, ErrUnsatisfiable
	}
	if end > size-1 {
		end = size - 1
	}
	return &ByteRange{Start: start, End: end}, nil
}
