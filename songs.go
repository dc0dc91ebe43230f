package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/sangeetx/sangeetx/internal/api"
)

const songsTimeout = 15 * time.Second

func songsCmd(opts *options) *cobra.Command {
	var likedOnly bool
	cmd := &cobra.Command{
		Use:   "songs [query]",
		Short: "List the catalog, or search it, without starting the player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(*opts)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), songsTimeout)
			defer cancel()
			songs, err := fetchSongs(ctx, newAPIClient(cfg), query)
			if err != nil {
				return err
			}
			if likedOnly {
				songs = likedSongs(songs)
			}
			renderSongs(cmd.OutOrStdout(), songs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&likedOnly, "liked", false, "only show liked songs")
	return cmd
}

type catalog interface {
	Songs(ctx context.Context) ([]api.Song, error)
	Search(ctx context.Context, query string) ([]api.Song, error)
}

func fetchSongs(ctx context.Context, c catalog, query string) ([]api.Song, error) {
	if query == "" {
		return c.Songs(ctx)
	}
	return c.Search(ctx, query)
}

func likedSongs(songs []api.Song) []api.Song {
	out := songs[:0:0]
	for _, s := range songs {
		if s.IsLiked {
			out = append(out, s)
		}
	}
	return out
}

func renderSongs(w io.Writer, songs []api.Song) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Album", "Length", "Plays", "♥"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	for i, s := range songs {
		liked := ""
		if s.IsLiked {
			liked = "♥"
		}
		t.AppendRow(table.Row{
			i + 1, s.Title, s.ArtistName, s.Album,
			formatLength(s.Duration), humanize.Comma(s.PlayCount), liked,
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d songs", len(songs))})
	t.Render()
}

func formatLength(seconds int) string {
	if seconds <= 0 {
		return "--:--"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
