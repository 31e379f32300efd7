// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatwin/config"
	"github.com/katalvlaran/metatwin/errcode"
)

func getConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manages the configuration file",
	}
	cmd.AddCommand(getConfigInitCmd(), getConfigShowCmd())

	return cmd
}

func getConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Writes the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					gnlib.PrintUserMessage(err)
					return err
				}
				path = config.ConfigFilePath(home)
			}
			err := config.Generate(path)
			if errors.Is(err, config.ErrConfigExists) {
				fmt.Println(gnlib.FormatMessage(fmt.Sprintf("Config file <em>%s</em> already exists.", path), nil))
				return nil
			}
			if err != nil {
				err = userError(errcode.WriteFileError, "Cannot write <em>%s</em>", []any{path}, err)
				gnlib.PrintUserMessage(err)
				return err
			}
			fmt.Println(gnlib.FormatMessage(fmt.Sprintf("<em>✓ Created %s</em>", path), nil))

			return nil
		},
	}
}

func getConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Prints the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := cfg.Marshal()
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
