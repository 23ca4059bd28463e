package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/jsrefactor/internal/config"
	"github.com/bethropolis/jsrefactor/internal/logger"
)

func newTemplatesCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the templates of the active registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.ConfigFilePath, flags)
			if err != nil {
				return err
			}
			out, closeLog, err := openLog(cfg.Logger.LogFilePath)
			if err != nil {
				return err
			}
			defer closeLog()
			logger.Init(cfg.Logger, out)

			reg, err := loadTemplates(cfg.Refactor.Templates)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, key := range reg.Keys() {
				for _, variant := range reg.Variants(key) {
					if variant == "" {
						fmt.Fprintln(w, key)
						continue
					}
					fmt.Fprintf(w, "%s.%s\n", key, variant)
				}
			}
			return nil
		},
	}
}
