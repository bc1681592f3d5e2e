package ingest

import (
	"os"

	"github.com/tidwall/gjson"
)

// sidecarName reads `<path>.meta.json` for a "name" field, if the
// sidecar exists and parses. Any failure is treated as "no override" —
// a missing or malformed sidecar falls back to the filename stem rather
// than failing ingestion.
func sidecarName(path string) (string, bool) {
	data, err := os.ReadFile(path + ".meta.json")
	if err != nil {
		return "", false
	}

	name := gjson.GetBytes(data, "name")
	if !name.Exists() || name.String() == "" {
		return "", false
	}

	return name.String(), true
}
