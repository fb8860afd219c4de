package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pcsoft.com/lumo/internal/config"
	"pcsoft.com/lumo/internal/store"
	"pcsoft.com/lumo/internal/utils"
)

func NewHistoryCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect stored chat history",
	}
	cmd.AddCommand(newHistoryListCommand(cfg), newHistoryExportCommand(cfg), newHistoryClearCommand(cfg))
	return cmd
}

func newHistoryListCommand(cfg *config.Config) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chats, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireUser(); err != nil {
				return err
			}
			return printChats(cmd.OutOrStdout(), a.chats.Search(query), time.Now())
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Only list chats whose title or messages contain this text")
	return cmd
}

func printChats(out io.Writer, chats []store.Chat, now time.Time) error {
	if len(chats) == 0 {
		_, err := fmt.Fprintln(out, "No chats found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tMESSAGES\tUPDATED")
	for _, chat := range chats {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", chat.ID, chat.Title, len(chat.Messages), utils.RelativeTime(chat.UpdatedAt, now))
	}
	return w.Flush()
}

func newHistoryExportCommand(cfg *config.Config) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every chat to stdout as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireUser(); err != nil {
				return err
			}
			return exportChats(cmd.OutOrStdout(), a.chats.ListChats(), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml)")
	return cmd
}

func exportChats(out io.Writer, chats []store.Chat, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(chats)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(chats); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.Errorf("unsupported export format %q", format)
}

func newHistoryClearCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored chat but stay signed in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireUser(); err != nil {
				return err
			}
			a.chats.Clear()
			a.chat.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Chat history cleared.")
			return nil
		},
	}
}
