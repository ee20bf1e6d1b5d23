// Command unrealmcp serves a project's asset, blueprint, and console
// capabilities to MCP clients over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/glasskite/unrealmcp/internal/config"
	"github.com/glasskite/unrealmcp/internal/logging"
	"github.com/glasskite/unrealmcp/mcp"
	"github.com/glasskite/unrealmcp/project"
	"github.com/glasskite/unrealmcp/unreal"
)

func main() {
	if err := run(parseFlags()); err != nil {
		log.Fatal(err)
	}
}

// Flags holds the command line configuration.
type Flags struct {
	ConfigPath string
	ProjectDir string
	ListenAddr string
}

func parseFlags() *Flags {
	return parseFlagsArgs(os.Args[1:])
}

func parseFlagsArgs(args []string) *Flags {
	var flags Flags
	fs := flag.NewFlagSet("unrealmcp", flag.ContinueOnError)

	fs.StringVar(&flags.ConfigPath, "config", "unrealmcp.yaml", "Path to the server config file")
	fs.StringVar(&flags.ProjectDir, "project", ".", "Path to the project root directory")
	fs.StringVar(&flags.ListenAddr, "listen", "", "Listen address (overrides the config file)")
	_ = fs.Parse(args)

	return &flags
}

// shellRunner executes console commands through the host shell. The editor
// integration swaps in its own runner; this one keeps the tool usable when
// the server fronts a plain directory of exported content.
type shellRunner struct{}

func (shellRunner) Run(command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty command")
	}
	out, err := exec.Command(fields[0], fields[1:]...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func run(flags *Flags) error {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	if flags.ListenAddr != "" {
		cfg.ListenAddr = flags.ListenAddr
	}

	index, err := project.OpenIndex(cfg.Project.IndexPath)
	if err != nil {
		return fmt.Errorf("open asset index: %w", err)
	}
	defer index.Close()

	proj, err := project.Open(cfg.Project, project.DirFS(flags.ProjectDir), index, shellRunner{})
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}

	registry := mcp.NewRegistry()
	if err := unreal.RegisterAll(registry, proj); err != nil {
		return fmt.Errorf("register capabilities: %w", err)
	}
	defer registry.Clear()

	server, err := mcp.NewServer(registry,
		mcp.Implementation{Name: cfg.ServerName, Version: cfg.Version},
		mcp.WithInstructions(cfg.Instructions))
	if err != nil {
		return err
	}

	handler := mcp.NewHTTPHandler(server)
	defer handler.Close()

	mux := http.NewServeMux()
	mux.Handle(cfg.RoutePath, handler)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger().Info("listening", "addr", cfg.ListenAddr, "path", cfg.RoutePath)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logging.Logger().Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
