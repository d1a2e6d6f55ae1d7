// Package main provides the entry point for ovpn-profile.
// ovpn-profile converts OpenVPN 2 command line options and configuration
// files into self-contained OpenVPN 3 profiles.
//
// Features:
//   - Inline embedding of certificates, keys and PKCS#12 archives
//   - Nested --config files with cycle detection
//   - Import into the OpenVPN 3 configuration manager over D-Bus
//   - Optional passphrase caching in the system keyring
//
// Usage:
//
//	ovpn-profile generate -- --config client.ovpn
//	ovpn-profile import --name work -- --config client.ovpn
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/ovpn-profile/cli"
	"github.com/yllada/ovpn-profile/common"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

func main() {
	if err := common.InitLogger(common.LogConfig{
		Level:       common.LevelInfo,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logging: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	setupSignalHandler(cancel)

	code := cli.Execute(ctx, versionString(), os.Args[1:])

	cancel()
	common.CloseLogger()
	os.Exit(code)
}

func versionString() string {
	if buildTime == "unknown" {
		return appVersion
	}
	return fmt.Sprintf("%s (commit %s, built %s)", appVersion, commitSHA, buildTime)
}

// setupSignalHandler cancels the context on SIGINT/SIGTERM so a pending
// D-Bus call or passphrase prompt is abandoned.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, shutting down", sig)
		cancel()
	}()
}
