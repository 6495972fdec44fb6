package buildinfo

import "fmt"

// Set with -ldflags "-X loan-fee/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("loan-fee %s (commit=%s, date=%s)", Version, Commit, Date)
}
