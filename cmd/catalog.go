package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/mediabot/couchpotato"
)

var (
	// wanted add flags
	identifier string
	profileID  string
	categoryID string
	forceReadd bool
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test connection to CouchPotato",
	Long:    `Test the connection to your CouchPotato instance.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

// chartsCmd represents the charts command
var chartsCmd = &cobra.Command{
	Use:     "charts",
	Short:   "Show the trending movie charts",
	PreRunE: initializeApp,
	RunE:    runCharts,
}

// wantedCmd groups the wanted list commands
var wantedCmd = &cobra.Command{
	Use:   "wanted",
	Short: "Manage the wanted list",
}

var wantedListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List movies on the wanted list",
	PreRunE: initializeApp,
	RunE:    runWantedList,
}

var wantedAddCmd = &cobra.Command{
	Use:     "add <title>",
	Short:   "Add a movie to the wanted list",
	Long:    `Add a movie to the wanted list. The IMDb identifier is required, e.g. --identifier tt0113277.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runWantedAdd,
}

var wantedRemoveCmd = &cobra.Command{
	Use:     "remove <media-id>",
	Short:   "Remove a movie from the wanted list",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runWantedRemove,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:     "search <title>",
	Short:   "Search CouchPotato for a movie",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

// mediaCmd represents the media command
var mediaCmd = &cobra.Command{
	Use:     "media <media-id>",
	Short:   "Show a single movie",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runMedia,
}

func init() {
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(mediaCmd)

	wantedCmd.AddCommand(wantedListCmd)
	wantedCmd.AddCommand(wantedAddCmd)
	wantedCmd.AddCommand(wantedRemoveCmd)
	rootCmd.AddCommand(wantedCmd)

	wantedAddCmd.Flags().StringVarP(&identifier, "identifier", "i", "", "IMDb identifier of the movie")
	wantedAddCmd.Flags().StringVar(&profileID, "profile", "", "quality profile id")
	wantedAddCmd.Flags().StringVar(&categoryID, "category", "", "category id")
	wantedAddCmd.Flags().BoolVar(&forceReadd, "force-readd", false, "re-add a movie that is already in the library")
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to CouchPotato at %s...\n", cfg.CouchPotato.Host)

	resp, err := catalog.IsAvailable(cmd.Context())
	if err != nil {
		fmt.Println(formatter.FormatConnectivityTest(false))
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Println(formatter.FormatConnectivityTest(resp.Success))
	return nil
}

func runCharts(cmd *cobra.Command, args []string) error {
	charts, err := catalog.Charts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get charts: %w", err)
	}

	out, err := formatter.FormatCharts(charts)
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}

func runWantedList(cmd *cobra.Command, args []string) error {
	wanted, err := catalog.WantedList(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get wanted list: %w", err)
	}

	fmt.Println(formatter.FormatWanted(wanted))
	return nil
}

func runWantedAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	resp, err := catalog.AddToWanted(cmd.Context(), couchpotato.AddOptions{
		Title:      title,
		Identifier: identifier,
		ProfileID:  profileID,
		CategoryID: categoryID,
		ForceReadd: forceReadd,
	})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", title, err)
	}

	if !resp.Success {
		return fmt.Errorf("CouchPotato did not add %s", title)
	}

	fmt.Printf("✓ Added %s to the wanted list\n", title)
	return nil
}

func runWantedRemove(cmd *cobra.Command, args []string) error {
	ok, err := catalog.RemoveFromWanted(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", args[0], err)
	}

	if !ok {
		return fmt.Errorf("CouchPotato did not remove %s", args[0])
	}

	fmt.Printf("✓ Removed %s from the wanted list\n", args[0])
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	results, err := catalog.Search(cmd.Context(), title)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Println(formatter.FormatSearch(title, results))
	return nil
}

func runMedia(cmd *cobra.Command, args []string) error {
	resp, err := lookupMedia(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	media := resp.Media
	fmt.Printf("• %s (%d)\n", media.Title, media.Info.Year)
	fmt.Printf("  ID: %s\n", media.ID)
	fmt.Printf("  Status: %s\n", media.Status)
	if media.Info.Imdb != "" {
		fmt.Printf("  IMDb: %s\n", media.Info.Imdb)
	}
	if len(media.Releases) > 0 {
		fmt.Printf("  Releases: %d\n", len(media.Releases))
	}
	if media.Info.Plot != "" {
		fmt.Printf("\n%s\n", media.Info.Plot)
	}

	return nil
}

func lookupMedia(ctx context.Context, id string) (*couchpotato.MediaResponse, error) {
	resp, err := catalog.GetMediaByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get media %s: %w", id, err)
	}

	if !resp.Success || resp.Media == nil {
		return nil, fmt.Errorf("media %s not found", id)
	}

	return resp, nil
}
