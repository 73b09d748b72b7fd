package cmd

import (
	"hiphop_roadmap_backend/internal/app"
	"hiphop_roadmap_backend/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "hiphop-roadmap",
	Short:        "Hip-hop dance roadmap backend",
	Long:         "HTTP API serving the skill catalog, learner progress and personalized roadmaps.",
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config-dir", "configs", "Directory containing config.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("config-dir")
	return config.LoadConfig(dir)
}

// newApp 加载配置并初始化应用；force 为 true 时 release 模式也执行迁移
func newApp(cmd *cobra.Command, force bool) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.ForceMigrate = force
	return app.NewApp(cfg)
}
