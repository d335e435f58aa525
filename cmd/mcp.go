package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/kayz/slidesmith/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP tool server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, _ := buildEngine(cfg, nil)
		generateFn, err := buildGenerateFunc(cfg)
		if err != nil {
			return err
		}

		s := mcptools.NewServer(eng, generateFn, Version)
		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
