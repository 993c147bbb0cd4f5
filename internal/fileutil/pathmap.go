package fileutil

import "strings"

// PathMap translates paths reported by the media server (typically from inside
// a container) into paths visible to this process.
type PathMap struct {
	ContainerPrefix string
	HostPrefix      string
}

// Enabled reports whether both prefixes are configured.
func (m PathMap) Enabled() bool {
	return m.ContainerPrefix != "" && m.HostPrefix != ""
}

// Resolve maps remote onto the host filesystem. See ResolveLocalPath.
func (m PathMap) Resolve(remote string) string {
	return ResolveLocalPath(remote, m.ContainerPrefix, m.HostPrefix)
}

// ResolveLocalPath replaces the leading containerPrefix of remote with
// hostPrefix. The input is returned unchanged when either prefix is empty or
// remote does not start with containerPrefix. Only the first occurrence is
// replaced, so applying the mapping twice can double-map a path whose host
// prefix itself starts with the container prefix.
func ResolveLocalPath(remote, containerPrefix, hostPrefix string) string {
	if containerPrefix == "" || hostPrefix == "" {
		return remote
	}
	if !strings.HasPrefix(remote, containerPrefix) {
		return remote
	}
	return hostPrefix + remote[len(containerPrefix):]
}
