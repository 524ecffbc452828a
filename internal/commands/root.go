package commands

import (
	"github.com/spf13/cobra"
	"github.com/studyplan/studyplan/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "studyplan",
	Short: "A study calendar for planning time-boxed tasks",
	Long: `studyplan schedules study tasks on a day, week and month calendar.
Run the Task and Tag Store with "serve" and open the calendar with "calendar".`,
	SilenceUsage: true,
}

func loadConfig() (config.Application, error) {
	return config.Load(configPath)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config/application.yaml", "path to the YAML configuration file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(calendarCmd)
}
