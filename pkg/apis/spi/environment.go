package spi

const (
	PlatformType       = "OpenStack"
	PlatformAPIVersion = "v2.1"
)

// RuntimeEnvironmentInfo describes the deployer and the cloud it talks to.
type RuntimeEnvironmentInfo struct {
	SPI                   string
	ImplementationName    string
	ImplementationVersion string
	PlatformType          string
	PlatformAPIVersion    string
	PlatformClientVersion string
	PlatformHostVersion   string
	PlatformSpecificInfo  map[string]string
}
