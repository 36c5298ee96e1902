package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ninakotova/lumina/internal/config"
	"github.com/ninakotova/lumina/internal/export"
	"github.com/ninakotova/lumina/internal/storage"
)

// newExportCmd renders a stored chat without starting a server.
func newExportCmd() *cobra.Command {
	var opts struct {
		Format string
		Output string
		List   bool
	}

	cmd := &cobra.Command{
		Use:   "export [chat-id]",
		Short: "Export a stored chat as markdown, txt or json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := storage.Open(cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			data, ok, err := db.Load(storage.KeyChats)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("no stored chats found")
			}
			chats := storage.DecodeChats(data)

			if opts.List {
				for _, c := range chats {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d messages\n", c.ID, c.Title, len(c.Messages))
				}
				return nil
			}

			if len(args) != 1 {
				return errors.New("chat id required (use --list to see stored chats)")
			}

			for _, c := range chats {
				if c.ID != args[0] {
					continue
				}
				rendered, _, err := export.Render(c, export.Format(opts.Format))
				if err != nil {
					return err
				}
				if opts.Output == "" {
					_, err = cmd.OutOrStdout().Write(rendered)
					return err
				}
				return os.WriteFile(opts.Output, rendered, 0o644)
			}
			return errors.Errorf("chat %s not found", args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", string(export.FormatMarkdown), "export format: markdown, txt or json")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVarP(&opts.List, "list", "l", false, "list stored chats instead of exporting")
	return cmd
}
