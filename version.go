package kwextract

// Version is overridden at build time with -ldflags "-X github.com/a-h/kwextract.Version=...".
var Version = "dev"
