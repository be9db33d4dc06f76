// Package memimage reads and writes the textual memory images used to
// preload RAM and ROM contents.
//
// An image is a whitespace separated list of words. Each word is either a
// hex value, stored at the next address, or a run `n-h`, which stores the
// hex value h at the next n addresses.
package memimage

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

type image struct {
	Words []*word `parser:"@@*"`
}

type word struct {
	Run  string `parser:"  @RunLength"`
	Word string `parser:"| @Word"`
}

var parser = participle.MustBuild[image](
	participle.Lexer(imageLexer),
	participle.Elide("Whitespace"),
)

// ErrTooLarge is returned when an image holds more words than the memory it
// is meant for.
var ErrTooLarge = errors.New("memimage: image larger than memory")

// Parse decodes an image into one value per address. An image expanding to
// more than limit words is rejected before it is expanded.
func Parse(src string, limit int) ([]uint64, error) {
	img, err := parser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("memimage: %w", err)
	}
	return expand(img, limit)
}

// Read decodes an image from r, with the same limit as Parse.
func Read(r io.Reader, limit int) ([]uint64, error) {
	img, err := parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("memimage: %w", err)
	}
	return expand(img, limit)
}

func expand(img *image, limit int) ([]uint64, error) {
	var out []uint64
	for _, w := range img.Words {
		if w.Run == "" {
			v, err := strconv.ParseUint(w.Word, 16, 64)
			if err != nil {
				return nil, fmt.Errorf("memimage: invalid word %q: %w", w.Word, err)
			}
			if len(out) >= limit {
				return nil, fmt.Errorf("%w: more than %d words", ErrTooLarge, limit)
			}
			out = append(out, v)
			continue
		}
		count, value, _ := strings.Cut(w.Run, "-")
		n, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("memimage: invalid run length in %q: %w", w.Run, err)
		}
		v, err := strconv.ParseUint(value, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("memimage: invalid run value in %q: %w", w.Run, err)
		}
		if n > limit-len(out) {
			return nil, fmt.Errorf("%w: run %q exceeds %d words", ErrTooLarge, w.Run, limit)
		}
		for i := 0; i < n; i++ {
			out = append(out, v)
		}
	}
	return out, nil
}

// Format encodes words, collapsing repeats of three or more into runs.
func Format(words []uint64) string {
	var sb strings.Builder
	for i := 0; i < len(words); {
		j := i
		for j < len(words) && words[j] == words[i] {
			j++
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if n := j - i; n >= 3 {
			fmt.Fprintf(&sb, "%d-%x", n, words[i])
			i = j
			continue
		}
		fmt.Fprintf(&sb, "%x", words[i])
		i++
	}
	return sb.String()
}
