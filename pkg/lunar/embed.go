package lunar

import _ "embed"

// Default term-table resource, regenerated by cmd/mktable. A deployment can
// override it with an on-disk file via configuration.
//
//go:embed table45.bin
var defaultTableBytes []byte

// LoadDefault parses the embedded term-table resource.
func LoadDefault() (*TermTable, error) {
	return LoadTable(defaultTableBytes)
}
