package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tmux-session-manager/pkg/config"
	"tmux-session-manager/pkg/mux"
	"tmux-session-manager/pkg/orchestrator"
	"tmux-session-manager/pkg/render"
	"tmux-session-manager/pkg/sink"
	"tmux-session-manager/pkg/tmux"
	"tmux-session-manager/pkg/zellij"
)

var (
	flagConfigDir string
	flagVerbose   bool
)

func sinkFor(cfg config.Config) sink.Sink {
	return &sink.ExecSink{}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.Warn(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tmux-session-manager",
		Short:         "Declarative tmux/zellij session orchestrator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "override the session config directory")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose flag (no command reads it)")

	root.AddCommand(
		newStartCmd(),
		newStopCmd(),
		newListCmd(),
		newNewCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newYAMLCmd(),
	)
	return root
}

func buildOrchestrator() *orchestrator.Orchestrator {
	cfg := config.Resolve()
	if flagConfigDir != "" {
		cfg.ConfigDir = config.ExpandHome(flagConfigDir)
	}

	var backend mux.Capability
	s := sinkFor(cfg)
	switch cfg.Backend {
	case "zellij":
		backend = zellij.New(s)
	default:
		backend = tmux.NewBackend(s)
	}

	return orchestrator.New(cfg, backend)
}

func newStartCmd() *cobra.Command {
	var attach bool
	cmd := &cobra.Command{
		Use:   "start [name]",
		Short: "Start a session from a config (local .tmux-session-manager.yaml if name is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return buildOrchestrator().Start(name, attach)
		},
	}
	cmd.Flags().BoolVar(&attach, "attach", false, "attach/switch to the session once started")
	return cmd
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <name>",
		Short: "Run shutdown commands and kill a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildOrchestrator().Stop(args[0])
		},
	}
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available session configs, marking the ones running live",
		RunE: func(cmd *cobra.Command, args []string) error {
			o := buildOrchestrator()
			configs, err := o.ListConfigs()
			if err != nil {
				return err
			}
			live, err := o.ListSessions()
			if err != nil {
				return err
			}
			liveSet := make(map[string]bool, len(live))
			for _, l := range live {
				liveSet[l] = true
			}

			fmt.Println(render.Title("Configs"))
			if len(configs) == 0 {
				fmt.Println(render.Warn("  no configurations found"))
			}
			for _, c := range configs {
				fmt.Println("  " + render.SessionRow(c, liveSet[c]))
			}
			return nil
		},
	}
	return cmd
}

func newNewCmd() *cobra.Command {
	var copyFrom string
	var pwd bool
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new session config and open it in your editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildOrchestrator().NewConfig(args[0], copyFrom, pwd)
		},
	}
	cmd.Flags().StringVar(&copyFrom, "copy", "", "copy an existing named config instead of the template")
	cmd.Flags().BoolVar(&pwd, "pwd", false, "create a local config in the current directory")
	return cmd
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <name>",
		Short: "Open a named session config in your editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildOrchestrator().EditConfig(args[0])
		},
	}
}

func newDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a named session config",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildOrchestrator().DeleteConfig(args[0], force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

func newYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "yaml [name]",
		Short: "Print the YAML reconstruction of a live session (the current one if name is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			out, err := buildOrchestrator().YAML(name)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}
