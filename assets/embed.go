// assets/embed.go
//
// Files compiled into the binary. Only the SQL migrations live here; they are
// applied in lexical order by internal/history.

package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var FS embed.FS

// Migrations lists the embedded migration paths in apply order.
func Migrations() ([]string, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
