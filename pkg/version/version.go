// Package version provides version information for the spotavg application.
package version

// Version is the current version of the spotavg application.
const Version = "0.3.0"

// AgentString returns the User-Agent sent with price requests.
// Format: spotavg/v{version}
func AgentString() string {
	return "spotavg/v" + Version
}
