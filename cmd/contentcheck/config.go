package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	category   string
	contentURL string
	count      int
	json       bool
	timeout    time.Duration
}

func (c *Config) validate() error {
	if c.timeout <= 0 {
		return fmt.Errorf("invalid timeout (must be positive): %s", c.timeout)
	}
	if c.count < 1 {
		return errors.New("--count must be at least 1")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CLUEQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "contentcheck",
		Short:   "Validate clue pools and preview item draws.",
		Version: releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.validate()
		},
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.contentURL, "content-url", "", "remote item service tried before bundled pools (env: CLUEQUIZ_CONTENT_URL)")
	fs.BoolVar(&cfg.json, "json", false, "print JSON instead of text (env: CLUEQUIZ_JSON)")
	fs.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "remote fetch timeout (env: CLUEQUIZ_TIMEOUT)")

	cmd.AddCommand(newValidateCmd(cfg), newListCmd(cfg), newDrawCmd(cfg))

	bindEnv(v, fs)
	for _, sub := range cmd.Commands() {
		bindEnv(v, sub.Flags())
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("contentcheck v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

// bindEnv lets CLUEQUIZ_* variables fill flags the user did not pass.
func bindEnv(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
