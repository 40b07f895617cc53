package util

import (
	"bufio"
	"io"
	"strings"
)

// ReadLine. reads one '\n' terminated line without the line terminator. The last line of a
// file may omit the terminator.
func ReadLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
