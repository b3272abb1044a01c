package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HsiangNianian/AMonItor/bridge/internal/route"
)

func resolveCmd() *cobra.Command {
	var (
		sessionID string
		params    []string
	)
	cmd := &cobra.Command{
		Use:   "resolve <target>",
		Short: "Print the host URL a navigate request would open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bag, err := parseParams(params)
			if err != nil {
				return err
			}
			href, err := route.NewResolver(sessionID).Href(args[0], bag)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), href)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "SESSIONID", "Legacy session id to embed")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Navigate param as key=value (repeatable)")
	return cmd
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the supported navigation targets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range route.Targets() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
		},
	}
}

func parseParams(kvs []string) (map[string]string, error) {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad param %q, want key=value", kv)
		}
		out[k] = v
	}
	return out, nil
}
