package preview

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/xonecas/glancr/internal/filesearch"
)

// maxLineBytes caps how much of one line the large-file path keeps; the rest
// of an over-long line is discarded.
const maxLineBytes = 1024 * 1024

const largeFileWarning = "Large file detected - showing plain text without syntax highlighting"

// buildLarge streams the file without highlighting. Every matching line is
// emphasized as one whole-line span; the first is the scroll target.
func buildLarge(path string, m *filesearch.Matcher, opts Options) Result {
	f, err := os.Open(path)
	if err != nil {
		return Placeholder()
	}
	defer f.Close()

	res := Result{Large: true, Language: "plaintext"}
	res.Lines = append(res.Lines, banner(largeFileWarning))

	r := bufio.NewReaderSize(f, 64*1024)
	for n := 1; ; n++ {
		text, err := readLine(r)
		if err != nil {
			break
		}
		if n > opts.MaxLines {
			res.Truncated = true
			break
		}
		line := Line{gutter(n)}
		switch {
		case m.MatchLine(text):
			if res.ScrollTarget == 0 {
				res.ScrollTarget = n
			}
			line = append(line, Span{Text: text, Match: true, Bold: true})
		case text != "":
			line = append(line, Span{Text: text})
		}
		res.Lines = append(res.Lines, line)
	}

	if res.Truncated {
		res.Lines = append(res.Lines, banner(fmt.Sprintf("File truncated - showing first %d lines only", opts.MaxLines)))
	}
	return res
}

// readLine returns the next line without its terminator, keeping at most
// maxLineBytes of it. Invalid UTF-8 is replaced rather than rejected.
func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", err
		}
		if room := maxLineBytes - len(buf); room > 0 {
			buf = append(buf, chunk[:min(len(chunk), room)]...)
		}
		if !isPrefix {
			return strings.ToValidUTF8(string(buf), "�"), nil
		}
	}
}
