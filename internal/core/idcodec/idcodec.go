// Package idcodec packs the segment ids of one deduplicated row into a single
// opaque text cell and unpacks them again.
//
// Wire format: standard base64 of a zlib stream of the UTF-8 ids joined by "|"
package idcodec

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	perr "locbridge/internal/platform/errors"
)

// Delimiter separates ids inside the compressed payload
const Delimiter = "|"

// maxDecoded bounds the inflated payload
const maxDecoded = 64 << 20

// ErrCorruptBlob is wrapped by every Decode failure
var ErrCorruptBlob = errors.New("corrupt id blob")

// Encode packs ids into a blob. No ids gives "".
// An id containing the delimiter is rejected since it would split on decode
func Encode(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	for _, id := range ids {
		if strings.Contains(id, Delimiter) {
			return "", perr.InvalidArgf("segment id %q contains the blob delimiter %q", id, Delimiter)
		}
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := io.WriteString(zw, strings.Join(ids, Delimiter)); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "compress ids")
	}
	if err := zw.Close(); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "compress ids")
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode unpacks a blob. A blank blob gives no ids and no error
func Decode(blob string) ([]string, error) {
	blob = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, blob)
	if blob == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		if raw, err = base64.RawStdEncoding.DecodeString(blob); err != nil {
			return nil, corrupt(err, "base64")
		}
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, corrupt(err, "zlib header")
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxDecoded+1))
	if err != nil {
		return nil, corrupt(err, "zlib stream")
	}
	if len(out) > maxDecoded {
		return nil, corrupt(nil, "payload exceeds 64 MiB")
	}
	if !utf8.Valid(out) {
		return nil, corrupt(nil, "payload is not UTF-8")
	}
	return strings.Split(string(out), Delimiter), nil
}

// DecodeOrEmpty is Decode for call sites that degrade a corrupt blob to no ids
func DecodeOrEmpty(blob string) []string {
	ids, err := Decode(blob)
	if err != nil {
		return nil
	}
	return ids
}

func corrupt(cause error, what string) error {
	if cause == nil {
		cause = ErrCorruptBlob
	} else {
		cause = errors.Join(ErrCorruptBlob, cause)
	}
	return perr.Wrapf(cause, perr.ErrorCodeParse, "decode id blob: %s", what)
}
