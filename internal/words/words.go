// internal/words/words.go
//
// Word list management for the board generator.
//
// Responsibilities:
//   - Load the static dictionary from an environment-provided file or fall
//     back to the embedded default list.
//   - Normalize entries (trim, lowercase, drop blanks/comments/duplicates)
//     while PRESERVING ORDER — board reproducibility depends on every process
//     seeing the dictionary in the same order.
//   - Expose the dictionary for deterministic board generation.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt   (optional; one word per line)
//
// Initialization runs once (sync.Once). Init fails only if the resulting
// dictionary is too small to fill a board.

package words

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/codewords/assets"
	"github.com/robalobadob/codewords/internal/game"
)

var (
	initOnce   sync.Once
	dictionary []string
	initialErr error
)

// Init loads the dictionary exactly once.
func Init() error {
	initOnce.Do(func() {
		var list []string

		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			list, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			var err error
			list, err = assets.WordList()
			if err != nil {
				initialErr = err
				return
			}
		}

		dictionary = dedupe(list)
		if len(dictionary) < game.TotalCards {
			initialErr = fmt.Errorf("words: dictionary has %d words, need at least %d",
				len(dictionary), game.TotalCards)
		}
	})
	return initialErr
}

// Dictionary returns the loaded word list in its stable order.
// Callers must not mutate the returned slice.
func Dictionary() []string {
	return dictionary
}

// Count reports the dictionary size.
func Count() int {
	return len(dictionary)
}

// readWordFile loads one word per line, trimming whitespace, lowercasing, and
// skipping blanks and '#' comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// dedupe removes repeated words, keeping the first occurrence so order stays
// stable.
func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
