// Package paths provides path helpers shared by the filesystem layer and
// configuration.
//
// It answers structural questions about paths (canonical form, containment)
// and holds the default allow-list of read-only system roots. Trust
// decisions live in the filesystem provider.
//
// # Default Read-Only Roots
//
//	/Applications
//	/System/Applications
//	/usr/local
//	/opt
//
// # Usage
//
//	import "github.com/GriffinCanCode/finder/backend/internal/shared/paths"
//
//	home, _ := paths.Canonical(os.Getenv("HOME"))
//	if paths.Within(home, candidate) {
//	    // candidate is home or beneath it
//	}
package paths
