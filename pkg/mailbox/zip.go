package mailbox

import (
	"archive/zip"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// OpenZip returns the .eml entries of a zip archive in name order
func OpenZip(path string) (Source, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "open zip")
	}

	var files []*zip.File
	for _, f := range reader.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".eml") {
			continue
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return &zipSource{
		reader: reader,
		files:  files,
		name:   filepath.Base(path),
	}, nil
}

type zipSource struct {
	reader *zip.ReadCloser
	files  []*zip.File
	name   string
	pos    int
}

func (s *zipSource) Next() (*Message, error) {
	if s.pos >= len(s.files) {
		return nil, io.EOF
	}
	f := s.files[s.pos]
	s.pos++

	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s in %s", f.Name, s.name)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s in %s", f.Name, s.name)
	}
	return &Message{ID: s.name + "/" + f.Name, Raw: raw}, nil
}

func (s *zipSource) Close() error {
	return s.reader.Close()
}
