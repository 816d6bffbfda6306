// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rbas/fluxa/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	configPath := strings.TrimSpace(os.Getenv("FLUXA_CONFIG"))
	if configPath == "" {
		configPath = "fluxa.yaml"
		warn("FLUXA_CONFIG is empty; using ./fluxa.yaml")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fail(err.Error())
	}
	ok(fmt.Sprintf("config valid: %d service(s)", len(cfg.Services)))

	if cfg.PushoverAPIKey != "" && cfg.PushoverUserKey != "" {
		ok("pushover configured")
	}
	if cfg.SlackWebhook != "" {
		ok("slack webhook configured")
	}

	if addr := strings.TrimSpace(os.Getenv("FLUXA_ADDR")); addr != "" {
		ok("FLUXA_ADDR=" + addr)
	} else {
		warn("FLUXA_ADDR is empty; listen address from config file will be used.")
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		fail("log dir not writable: " + err.Error())
	}
	ok("log dir writable: " + cfg.LogDir)

	ok("preflight passed")
}
