package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/pixel-art-mcp/internal/config"
	"github.com/ironsheep/pixel-art-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var configPath string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("pixelart-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a path\n", args[i])
				os.Exit(2)
			}
			i++
			configPath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n", args[i])
			printUsage()
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	server.Version = Version
	if cfg.Debug() {
		log.Printf("Pixel Art MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}
	cfg := config.DefaultConfig()
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

func printUsage() {
	fmt.Println("pixelart-mcp - MCP server for pixel-art editing")
	fmt.Println()
	fmt.Println("Usage: pixelart-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c PATH  Load YAML configuration from PATH")
	fmt.Println("  --version, -v      Print version information")
	fmt.Println("  --help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Enable debug logging\n", config.EnvLogLevel)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
