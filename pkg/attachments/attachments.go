// Package attachments saves email attachments to disk
package attachments

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/abusix/ioc-parsers/pkg/email"
)

// Save writes the attachments of one email into dir and returns the written
// paths. With an empty filter every attachment is saved; otherwise only the
// first attachment named exactly filter.
func Save(dir string, atts []email.Attachment, filter string) ([]string, error) {
	var saved []string
	for _, att := range atts {
		if filter != "" && att.FileName != filter {
			continue
		}
		path, err := writeUnique(dir, att)
		if err != nil {
			return saved, err
		}
		saved = append(saved, path)
		if filter != "" {
			break
		}
	}
	return saved, nil
}

// writeUnique stores att under its own name, or "[n]name" with the smallest
// free n when that name is taken
func writeUnique(dir string, att email.Attachment) (string, error) {
	name := filepath.Base(att.FileName)
	if name == "." || name == string(filepath.Separator) {
		return "", errors.Errorf("attachment has no usable file name: %q", att.FileName)
	}

	candidate := name
	for n := 1; ; n++ {
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			candidate = fmt.Sprintf("[%d]%s", n, name)
			continue
		}
		if err != nil {
			return "", errors.Wrapf(err, "create %s", path)
		}

		if _, err := f.Write(att.Data); err != nil {
			f.Close()
			return "", errors.Wrapf(err, "write %s", path)
		}
		return path, errors.Wrapf(f.Close(), "close %s", path)
	}
}
