package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var numToken = regexp.MustCompile(`\d+`)

type imageEntry struct {
	path string
	seq  int
}

// ImageSource reads frames from a directory of numbered still images.
// The first run of digits in each filename is the sort key, so
// image-2.png orders before image-10.png regardless of string order.
type ImageSource struct {
	entries []imageEntry
}

func NewImageSource(dir string) (*ImageSource, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var entries []imageEntry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := filepath.Ext(f.Name())
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			continue
		}
		tok := numToken.FindString(f.Name())
		if tok == "" {
			return nil, fmt.Errorf("image %s has no numeric token to sort by (expected names like image-1.png)", f.Name())
		}
		seq, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("image %s: bad numeric token %q: %w", f.Name(), tok, err)
		}
		entries = append(entries, imageEntry{path: filepath.Join(dir, f.Name()), seq: seq})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no images found in %s (expected numbered .png/.jpg files)", dir)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].seq != entries[j].seq {
			return entries[i].seq < entries[j].seq
		}
		return entries[i].path < entries[j].path
	})

	return &ImageSource{entries: entries}, nil
}

func (s *ImageSource) FrameCount() int {
	return len(s.entries)
}

func (s *ImageSource) Frame(index int) (image.Image, error) {
	f, err := os.Open(s.entries[index].path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.entries[index].path, err)
	}
	return img, nil
}

func (s *ImageSource) Close() error {
	return nil
}

// Paths returns the ordered frame file paths. Used for logging only.
func (s *ImageSource) Paths() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.path
	}
	return out
}
