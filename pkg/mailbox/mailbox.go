// Package mailbox reads raw emails from .eml files, directories of .eml
// files, zip archives of .eml files and mbox archives
package mailbox

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/emersion/go-mbox"
	"github.com/pkg/errors"
)

// Message is one raw email and where it came from
type Message struct {
	ID  string
	Raw []byte
}

// Source yields messages until it returns io.EOF
type Source interface {
	Next() (*Message, error)
	Close() error
}

// Open picks a source for path: a directory of .eml files, a .zip of .eml
// files, an mbox archive, or a single .eml file
func Open(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	if info.IsDir() {
		return OpenDir(path)
	}

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return OpenZip(path)
	}

	isMbox, err := looksLikeMbox(path)
	if err != nil {
		return nil, err
	}
	if isMbox {
		return OpenMbox(path)
	}
	return &fileSource{files: []string{path}}, nil
}

func looksLikeMbox(path string) (bool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mbox", ".mbx":
		return true, nil
	case ".eml":
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, errors.Wrap(err, "open input")
	}
	defer f.Close()

	head, err := bufio.NewReader(f).Peek(5)
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, "read input")
	}
	return string(head) == "From ", nil
}

// OpenDir returns the .eml files of dir in name order
func OpenDir(dir string) (Source, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.eml"))
	if err != nil {
		return nil, errors.Wrap(err, "list input directory")
	}
	sort.Strings(files)
	return &fileSource{files: files}, nil
}

type fileSource struct {
	files []string
	pos   int
}

func (s *fileSource) Next() (*Message, error) {
	if s.pos >= len(s.files) {
		return nil, io.EOF
	}
	path := s.files[s.pos]
	s.pos++

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return &Message{ID: filepath.Base(path), Raw: raw}, nil
}

func (s *fileSource) Close() error {
	return nil
}

// OpenMbox streams the messages of an mbox archive
func OpenMbox(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open mbox")
	}
	return &mboxSource{
		file:   f,
		reader: mbox.NewReader(f),
		name:   filepath.Base(path),
	}, nil
}

type mboxSource struct {
	file   *os.File
	reader *mbox.Reader
	name   string
	count  int
}

func (s *mboxSource) Next() (*Message, error) {
	r, err := s.reader.NextMessage()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read message %d of %s", s.count+1, s.name)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read message %d of %s", s.count+1, s.name)
	}
	s.count++

	return &Message{ID: fmt.Sprintf("%s#%d", s.name, s.count), Raw: raw}, nil
}

func (s *mboxSource) Close() error {
	return s.file.Close()
}
