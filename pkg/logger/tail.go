package logger

import (
	"io"
	"os"
	"unicode/utf8"
)

// TailFile returns at most the last n characters of the file at path.
// The result never starts in the middle of a UTF-8 sequence.
func TailFile(path string, n int) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}

	// a character is at most utf8.UTFMax bytes
	offset := info.Size() - int64(n)*utf8.UTFMax
	if offset < 0 {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return "", err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	for len(data) > 0 && !utf8.RuneStart(data[0]) {
		data = data[1:]
	}
	for count := utf8.RuneCount(data); count > n; count-- {
		_, size := utf8.DecodeRune(data)
		data = data[size:]
	}
	return string(data), nil
}
