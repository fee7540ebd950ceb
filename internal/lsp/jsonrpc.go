package lsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Base-protocol framing: a block of "Name: value" header lines terminated by
// a blank line, then exactly Content-Length bytes of JSON payload.

// maxFrameSize rejects absurd Content-Length values before allocating.
const maxFrameSize = 16 << 20

var errMissingLength = errors.New("frame header missing Content-Length")

func readFrame(r *bufio.Reader) ([]byte, error) {
	size := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, found := strings.Cut(line, ":")
		if !found || !strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			// Unknown headers (Content-Type and friends) are skipped.
			continue
		}
		size, err = strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("bad Content-Length: %w", err)
		}
	}
	if size < 0 {
		return nil, errMissingLength
	}
	if size > maxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds the %d byte limit", size, maxFrameSize)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func writeFrame(w io.Writer, payload []byte) error {
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(payload)); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
