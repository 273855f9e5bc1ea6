package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"videoframes/internal/model"
)

// Resolver turns a user-supplied path string into an absolute path to an
// existing video file. Resolution order: absolute path, home-relative path,
// configured base directory, current working directory. Extension-less
// candidates are additionally probed against the supported-format list in
// its fixed order. No recursive search is performed at any stage.
type Resolver struct {
	baseDir    string
	extensions []string
}

// New creates a resolver. baseDir may be empty, in which case bare
// filenames resolve against the working directory.
func New(baseDir string) *Resolver {
	return &Resolver{
		baseDir:    baseDir,
		extensions: model.SupportedExtensions,
	}
}

// Resolve returns the absolute path of the first existing match, or false
// when nothing matches. It never returns an error; the caller decides how
// to surface absence.
func (r *Resolver) Resolve(input string) (string, bool) {
	if input == "" {
		return "", false
	}

	switch {
	case filepath.IsAbs(input):
		return r.probe(input)

	case input == "~" || strings.HasPrefix(input, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		if input == "~" {
			return r.probe(home)
		}
		return r.probe(filepath.Join(home, input[2:]))

	case r.baseDir != "":
		return r.probe(filepath.Join(r.baseDir, input))

	default:
		abs, err := filepath.Abs(input)
		if err != nil {
			return "", false
		}
		return r.probe(abs)
	}
}

// probe tests a candidate, then candidate+ext for each supported extension
// when the candidate has none
func (r *Resolver) probe(candidate string) (string, bool) {
	if isRegularFile(candidate) {
		return candidate, true
	}
	if filepath.Ext(candidate) == "" {
		for _, ext := range r.extensions {
			if isRegularFile(candidate + ext) {
				return candidate + ext, true
			}
		}
	}
	return "", false
}

// ListAvailable returns the names of supported video files directly under
// the base directory, as a remediation hint for failed resolutions.
func (r *Resolver) ListAvailable() []string {
	if r.baseDir == "" {
		return nil
	}
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isSupportedExtension(filepath.Ext(entry.Name())) {
			names = append(names, entry.Name())
		}
	}
	return names
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range model.SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
