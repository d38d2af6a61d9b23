package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// getText prints a prompt to w and reads one line from reader, trimmed.
// A partial line at EOF is still returned.
func getText(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// getPassword reads a password from the terminal without echo.
func getPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// getInt reads a line and parses it as a positive integer.
func getInt(reader *bufio.Reader, w io.Writer, prompt string) (int, error) {
	s, err := getText(reader, w, prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

// getYesNo reads a y/n answer; anything starting with 'y' is yes.
func getYesNo(reader *bufio.Reader, w io.Writer, prompt string) (bool, error) {
	s, err := getText(reader, w, prompt+" (y/n)")
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(s), "y"), nil
}
