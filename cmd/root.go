package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Rana718/Tasksim/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════╗",
		"║   ████████╗ █████╗ ███████╗██╗  ██╗███████╗██╗███╗   ███╗ ║",
		"║   ╚══██╔══╝██╔══██╗██╔════╝██║ ██╔╝██╔════╝██║████╗ ████║ ║",
		"║      ██║   ███████║███████╗█████╔╝ ███████╗██║██╔████╔██║ ║",
		"║      ██║   ██╔══██║╚════██║██╔═██╗ ╚════██║██║██║╚██╔╝██║ ║",
		"║      ██║   ██║  ██║███████║██║  ██╗███████║██║██║ ╚═╝ ██║ ║",
		"║      ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚══════╝╚═╝╚═╝     ╚═╝ ║",
		"║                                                          ║",
		"║       Synthetic project-management datasets              ║",
		"╚══════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                     ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "tasksim",
	Short: "Generate and verify a synthetic project-management database",
	Long: `
Tasksim synthesizes a realistic project-management dataset (organizations,
teams, users, projects, sections, tasks, subtasks, comments, tags and custom
fields), writes it into a relational database and verifies its referential
and temporal integrity.

Database Support:
- SQLite (default, single file)
- PostgreSQL
- MySQL`,
	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("Tasksim CLI version %s\n", Version)
			return
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}

	config.Configure(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (cfgFile != "" && os.IsNotExist(err)) {
			return
		}
		// Unreadable files fall back to defaults like any other bad value.
		color.Yellow("⚠️  Ignoring config file: %v", err)
	}
}

// loadConfig reads the merged configuration and prints every value that fell
// back to its default.
func loadConfig() *config.Config {
	cfg := config.Load()
	for _, w := range cfg.Warnings {
		color.Yellow("⚠️  %s", w)
	}
	return cfg
}
