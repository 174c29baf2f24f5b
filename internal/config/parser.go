package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// RCFile is the project file read by `haxeget rc`.
const RCFile = ".haxerc"

// LoadRC parses a .haxerc file. The version field is required.
func LoadRC(path string) (RC, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return RC{}, fmt.Errorf("unable to read %s file, does it exist? %w", path, err)
	}

	var rc RC
	if err := json.Unmarshal(contents, &rc); err != nil {
		return RC{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	rc.Version = strings.TrimSpace(rc.Version)
	if rc.Version == "" {
		return RC{}, fmt.Errorf("%s does not name a version", path)
	}
	return rc, nil
}
