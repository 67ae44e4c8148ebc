package cli

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clearuse/clearuse/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clearuse",
	Short: "Clearuse - Copyright and fair-use checks for educational content",
	Long: `Clearuse inspects images and documents used in course materials
and produces an advisory copyright report.

It extracts copyright metadata and notices from the file, resolves the
likely license, runs a deterministic four-factor fair-use assessment for
the given course context, and suggests open-content alternatives when
the material looks restricted.

Clearuse is advisory. It is not legal advice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Clearuse.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("clearuse v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.clearuse/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.clearuse")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CLEARUSE_*
	viper.SetEnvPrefix("CLEARUSE")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig returns the built-in defaults overlaid with whatever viper
// loaded from the config file and environment. Flags still win, they are
// applied by each command after this.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	opt := func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }
	if err := viper.Unmarshal(cfg, opt); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring malformed config: %v\n", err)
		return model.DefaultConfig()
	}
	return cfg
}

// usageFromFlags resolves the course context, falling back to configured
// defaults for anything the user did not pass.
func usageFromFlags(cfg *model.Config, course, institution string) (model.UsageContext, error) {
	if course == "" {
		course = cfg.Context.CourseType
	}
	if institution == "" {
		institution = cfg.Context.InstitutionType
	}

	c, err := model.ParseCourseType(course)
	if err != nil {
		return model.UsageContext{}, err
	}
	i, err := model.ParseInstitutionType(institution)
	if err != nil {
		return model.UsageContext{}, err
	}
	return model.UsageContext{Course: c, Institution: i}, nil
}
