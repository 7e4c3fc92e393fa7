package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/propcast/internal/app"
	"github.com/ternarybob/propcast/internal/common"
)

func main() {
	common.InstallCrashHandler("./logs")
	defer common.RecoverWithCrashFile()

	_ = godotenv.Load()

	configPath := os.Getenv("PROPCAST_CONFIG")
	if configPath == "" {
		if _, err := os.Stat("propcast.toml"); err == nil {
			configPath = "propcast.toml"
		}
	}

	config, err := common.LoadFromFiles(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol, so logs go to file only
	config.Logging.Output = []string{"file"}
	logger := common.InitLogger(config)

	application, err := app.New(config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	mcpServer := server.NewMCPServer(
		"propcast",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createProjectInvestmentTool(), handleProjectInvestment(application.ProjectionService, logger))
	mcpServer.AddTool(createHandoverPriceTool(), handleHandoverPrice(application.ProjectionService, logger))
	mcpServer.AddTool(createResalePriceTool(), handleResalePrice(application.ProjectionService, logger))
	mcpServer.AddTool(createListCurvesTool(), handleListCurves(application.CurveService, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error().Err(err).Msg("MCP server failed")
	}
}
