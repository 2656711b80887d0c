package xliff

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	perr "locbridge/internal/platform/errors"
)

// Ext is the file extension of the files a project root is scanned for
const Ext = ".xliff"

// Discover lists the regular *.xliff files directly under root, sorted by name.
// No file at all is a NotFound error
func Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil && !os.IsNotExist(err) {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "list %s", root)
	}
	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		out = append(out, filepath.Join(root, e.Name()))
	}
	if len(out) == 0 {
		return nil, perr.NotFoundf("no %s files found in %s", Ext, root)
	}
	sort.Strings(out)
	return out, nil
}
