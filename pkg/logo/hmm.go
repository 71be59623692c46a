package logo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

// ReadHMM resolves an HMM given as a file path or as inline HMMER text.
// It returns the HMM and the file name to upload it under. A leading "~/"
// in a path is expanded to the home directory.
func ReadHMM(input string) ([]byte, string, error) {
	path := input
	if rest, ok := strings.CutPrefix(input, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	data, err := os.ReadFile(path)
	if err == nil {
		return data, filepath.Base(path), nil
	}
	if len(input) >= 5 && strings.EqualFold(input[:5], "hmmer") {
		return []byte(input), "str.hmm", nil
	}
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read HMM %s", path)
	}
	return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read HMM %s", path)
}
