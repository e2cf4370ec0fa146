// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package inspector

import (
	"path/filepath"
)

func getDefaultRoots(lookup func(string) (string, bool)) []string {
	userprofile, _ := lookup("USERPROFILE")
	systemdrive, _ := lookup("SystemDrive")

	return []string{
		filepath.Join(userprofile, "AppData", "Local", "shaderparser", "shaders"),
		filepath.Join(systemdrive, "ProgramData", "shaderparser", "shaders"),
	}
}
