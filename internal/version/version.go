package version

// Version is set during build via ldflags:
//
//	go build -ldflags "-X bookkeeping-gateway/internal/version.Version=1.2.0"
var Version = "dev"
