package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/akshat1423/memoire/client"
	"github.com/akshat1423/memoire/internal/config"
	"github.com/akshat1423/memoire/internal/types"
)

var storeURL string
var apiKey string
var debug bool

const defaultPageSize = 10
const maxPageSize = 100

func dbg(v interface{}) {
	if !debug {
		return
	}
	log.Debug().Interface("data", v).Msg("debug output")
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "memoirectl",
		Short: "memoirectl manages journal entries in the Memoire memory store",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()

			if debug {
				config.SetLogLevel(zerolog.DebugLevel)
				_ = os.Setenv("MEMOIRE_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				config.SetLogLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("MEMOIRE_STORE_URL", "http://localhost:8080")
	rootCmd.PersistentFlags().StringVar(&storeURL, "store-url", defaultURL, "Base URL of the Memoire memory store")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("MEMOIRE_STORE_API_KEY"), "Store API key (or MEMOIRE_STORE_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newDeleteUserCmd())
	rootCmd.AddCommand(newBatchDeleteCmd())

	return rootCmd
}

func newClient() (*client.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("--api-key or MEMOIRE_STORE_API_KEY is required")
	}
	return client.New(storeURL, apiKey), nil
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List store accounts with aggregate entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			resp, err := c.Users(ctx)
			if err != nil {
				return err
			}
			dbg(resp)
			printJSON(resp)
			return nil
		},
	}
}

// listSummary is the list command output: one page of entries plus the
// per-mood, per-city, and per-day tallies the dashboard shows.
type listSummary struct {
	Entries []client.Entry `json:"entries"`
	Count   int            `json:"count"`
	HasNext bool           `json:"has_next"`
	ByMood  map[string]int `json:"by_mood,omitempty"`
	ByCity  map[string]int `json:"by_city,omitempty"`
	ByDate  map[string]int `json:"by_date,omitempty"`
}

func newListCmd() *cobra.Command {
	var userID string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's entries with mood/location/date tallies",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pageSize <= 0 || pageSize > maxPageSize {
				return fmt.Errorf("--page-size must be between 1 and %d", maxPageSize)
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()

			start := time.Now()
			res, err := c.List(ctx, userID, page, pageSize)
			elapsed := time.Since(start)
			if err != nil {
				log.Error().Err(err).Str("user_id", userID).Dur("elapsed", elapsed).Msg("list failed")
				return err
			}
			log.Debug().Int("count", res.Count).Dur("elapsed", elapsed).Msg("list completed")

			out := listSummary{
				Entries: res.Entries,
				Count:   res.Count,
				HasNext: res.HasNext,
				ByMood:  map[string]int{},
				ByCity:  map[string]int{},
				ByDate:  map[string]int{},
			}
			for _, e := range res.Entries {
				if m := e.Metadata.MoodValue(); m != "" {
					out.ByMood[string(m)]++
				}
				if loc := e.Metadata.LocationValue(); loc != nil && loc.City != "" {
					out.ByCity[loc.City]++
				}
				if e.CreatedAt != nil {
					out.ByDate[e.CreatedAt.Format("2006-01-02")]++
				}
			}
			printJSON(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", client.AnonymousUserID, "Store user id")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", defaultPageSize, "Page size (1-100)")
	return cmd
}

func newAddCmd() *cobra.Command {
	var title, body, tagsCSV, mood string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a text entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if body == "" {
				return fmt.Errorf("--body is required")
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			meta := client.Metadata{}
			if title != "" {
				meta[types.MetaTitle] = title
			}
			if tagsCSV != "" {
				meta[types.MetaTags] = splitCSV(tagsCSV)
			}
			if mood != "" {
				m := types.Mood(mood)
				if !m.Valid() {
					return fmt.Errorf("unknown mood %q (one of: %s)", mood, moodList())
				}
				meta[types.MetaMood] = mood
			}

			entry, err := c.CreateEntry(ctx, client.EntryTypeText, body, meta)
			if err != nil {
				return err
			}
			dbg(entry)
			printJSON(entry)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Entry title")
	cmd.Flags().StringVar(&body, "body", "", "Entry body (required)")
	cmd.Flags().StringVar(&tagsCSV, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&mood, "mood", "", "Mood label")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var query, entryType, tagsCSV, location, dateFrom, dateTo string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Semantic search over entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query is required")
			}
			if pageSize <= 0 || pageSize > maxPageSize {
				return fmt.Errorf("--page-size must be between 1 and %d", maxPageSize)
			}

			filters := client.SearchFilters{
				Query:    query,
				Location: location,
				Page:     page,
				PageSize: pageSize,
			}
			if entryType != "" {
				t := types.EntryType(entryType)
				if !t.Valid() {
					return fmt.Errorf("unknown entry type %q", entryType)
				}
				filters.Types = []types.EntryType{t}
			}
			if tagsCSV != "" {
				filters.Tags = splitCSV(tagsCSV)
			}
			var err error
			if filters.DateFrom, err = parseDateFlag("date-from", dateFrom); err != nil {
				return err
			}
			if filters.DateTo, err = parseDateFlag("date-to", dateTo); err != nil {
				return err
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()

			start := time.Now()
			entries, err := c.Search(ctx, filters)
			elapsed := time.Since(start)
			if err != nil {
				log.Error().Err(err).Str("query", query).Dur("elapsed", elapsed).Msg("search failed")
				return err
			}
			log.Debug().Int("count", len(entries)).Dur("elapsed", elapsed).Msg("search completed")

			dbg(entries)
			printJSON(entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search query (required)")
	cmd.Flags().StringVar(&entryType, "type", "", "Restrict to one entry type")
	cmd.Flags().StringVar(&tagsCSV, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&location, "location", "", "City substring filter")
	cmd.Flags().StringVar(&dateFrom, "date-from", "", "Earliest creation date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dateTo, "date-to", "", "Latest creation date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", defaultPageSize, "Page size (1-100)")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newGetCmd() *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "get <entry-id>",
		Short: "Get one entry by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			if history {
				entries, err := c.EntryHistory(ctx, args[0])
				if err != nil {
					return err
				}
				printJSON(entries)
				return nil
			}

			entry, err := c.GetEntry(ctx, args[0])
			if err != nil {
				return err
			}
			printJSON(entry)
			return nil
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "Show the entry's revision history")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete one entry by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			if err := c.DeleteEntry(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
}

func newDeleteUserCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-user <user-id>",
		Short: "Delete every entry belonging to a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all entries for %q without --yes", args[0])
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			if err := c.DeleteAllEntries(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

func newBatchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch-delete <entry-id> [entry-id...]",
		Short: "Delete several entries in one call",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			items := make([]client.BatchDeleteItem, 0, len(args))
			for _, id := range args {
				items = append(items, client.BatchDeleteItem{EntryID: id})
			}
			if err := c.BatchDeleteEntries(ctx, items); err != nil {
				return err
			}
			fmt.Printf("deleted %d entries\n", len(items))
			return nil
		},
	}
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD", name)
	}
	return &t, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func moodList() string {
	names := make([]string, 0, len(types.Moods))
	for _, m := range types.Moods {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
