package app

import (
	"fmt"

	"github.com/bft-labs/avatarsync/pkg/avatar"
	"github.com/bft-labs/avatarsync/pkg/fetch"
	"github.com/bft-labs/avatarsync/pkg/lifecycle"
	"github.com/bft-labs/avatarsync/pkg/log"
	"github.com/bft-labs/avatarsync/pkg/settings"
	"github.com/bft-labs/avatarsync/pkg/store"
)

type moduleVersion struct {
	version    string
	minVersion string
}

func moduleVersions() map[string]moduleVersion {
	return map[string]moduleVersion{
		"avatar":    {avatar.Version, avatar.MinCompatibleVersion},
		"fetch":     {fetch.Version, fetch.MinCompatibleVersion},
		"lifecycle": {lifecycle.Version, lifecycle.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
		"settings":  {settings.Version, settings.MinCompatibleVersion},
		"store":     {store.Version, store.MinCompatibleVersion},
	}
}

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions(modules map[string]moduleVersion) error {
	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible reports whether version >= minVersion.
// Versions are "major.minor.patch"; missing parts count as zero.
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
