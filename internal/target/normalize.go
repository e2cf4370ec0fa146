// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"net/url"
	"path/filepath"
)

// Normalize converts an inspection target into the form expected by the file
// systems.
//
// Targets may be file paths or URIs. File paths and file URIs become absolute
// paths, where a relative path is taken relative to each search root. Other
// URIs are returned as-is for some other FileSystem to handle.
func Normalize(target string) string {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	if u.Scheme == "file" {
		target = u.Path
	}
	if !filepath.IsAbs(target) {
		return filepath.Join("/", target)
	}
	return filepath.Clean(target)
}
