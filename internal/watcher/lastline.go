package watcher

import (
	"bytes"
	"errors"
	"os"
	"unicode"

	"github.com/leighmacdonald/capwatch/internal/log"
)

var ErrRead = errors.New("failed to read last line")

const chunkSize = 4096

// ReadLastLine returns the final non-empty line of the file, read backwards from the end so
// large logs are not loaded whole. An empty file yields an empty string.
func ReadLastLine(path string) (string, error) {
	file, errOpen := os.Open(path)
	if errOpen != nil {
		return "", errors.Join(errOpen, ErrRead)
	}

	defer log.Closer(file)

	info, errStat := file.Stat()
	if errStat != nil {
		return "", errors.Join(errStat, ErrRead)
	}

	var (
		buf    []byte
		offset = info.Size()
	)

	for offset > 0 {
		readSize := min(int64(chunkSize), offset)
		offset -= readSize

		chunk := make([]byte, readSize)
		if _, errRead := file.ReadAt(chunk, offset); errRead != nil {
			return "", errors.Join(errRead, ErrRead)
		}

		buf = append(chunk, buf...)

		if line, found := lastLine(buf, offset == 0); found {
			return line, nil
		}
	}

	return "", nil
}

func lastLine(buf []byte, atStart bool) (string, bool) {
	trimmed := bytes.TrimRightFunc(buf, unicode.IsSpace)
	if idx := bytes.LastIndexByte(trimmed, '\n'); idx >= 0 {
		return string(trimmed[idx+1:]), true
	}

	if atStart {
		return string(trimmed), true
	}

	return "", false
}
