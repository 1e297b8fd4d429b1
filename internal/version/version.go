package version

// Version is overridden at build time:
//
//	go build -ldflags "-X sdscan/internal/version.Version=v1.2.0" ./cmd/sdscan
var Version = "dev"
