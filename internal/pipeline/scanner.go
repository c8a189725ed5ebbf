package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Source is an image file found under the input directory.
type Source struct {
	AbsPath string // path on disk
	RelPath string // slash-separated, relative to the input directory
	Key     string // RelPath without extension; names the manifest asset
	Format  string // canonical decoder name, see sourceFormats
	Size    int64  // bytes
}

// sourceFormats maps the extensions raster.Load can decode to a
// canonical format name.
var sourceFormats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".webp": "webp",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// ScanImages walks inputDir and returns every decodable image sorted by
// key. Hidden directories and the directories in skip (typically an
// output directory nested in the input) are not descended into.
func ScanImages(inputDir string, skip ...string) ([]Source, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if s != "" {
			skipped[filepath.Clean(s)] = true
		}
	}

	var sources []Source
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == inputDir {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || skipped[filepath.Clean(path)] {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		format, ok := sourceFormats[strings.ToLower(ext)]
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: rel,
			Key:     strings.TrimSuffix(rel, ext),
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Key < sources[j].Key })
	return sources, nil
}
