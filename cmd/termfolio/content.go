package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termfolio/internal/app"
	"github.com/vovakirdan/termfolio/internal/storage"
)

var flagContentLimit int

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and edit the content database",
	Long: `Show how many records each collection holds. The subcommands list,
delete and edit records without going through a seed file.

Examples:
  termfolio content
  termfolio content list projects
  termfolio content rm blog_posts 3
  termfolio content set resume_path cv.pdf`,
	Args: cobra.NoArgs,
	RunE: runContentCounts,
}

var contentListCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List the records of one collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runContentList,
}

var contentRmCmd = &cobra.Command{
	Use:   "rm <collection> <id|key>",
	Short: "Delete a record by id, or a site setting by key",
	Args:  cobra.ExactArgs(2),
	RunE:  runContentRm,
}

var contentGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a site setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runContentGet,
}

var contentSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a site setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runContentSet,
}

func init() {
	contentListCmd.Flags().IntVar(&flagContentLimit, "limit", 0, "Show at most this many records (0 for all)")
	contentCmd.AddCommand(contentListCmd, contentRmCmd, contentGetCmd, contentSetCmd)
}

func openStore() (*app.App, error) {
	a, err := openApp(app.Options{})
	if err != nil {
		return nil, err
	}
	if a.Store == nil {
		a.Close()
		return nil, errors.New("content database is unavailable")
	}
	return a, nil
}

func runContentCounts(cmd *cobra.Command, _ []string) error {
	a, err := openStore()
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	for _, c := range storage.Collections() {
		n, err := a.Store.Count(c, storage.Query{})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-18s %d\n", c, n)
	}
	return nil
}

func runContentList(cmd *cobra.Command, args []string) error {
	c, err := storage.ParseCollection(args[0])
	if err != nil {
		return err
	}
	a, err := openStore()
	if err != nil {
		return err
	}
	defer a.Close()

	q := storage.Query{OrderBy: "id", Limit: flagContentLimit}
	buckets := storage.Buckets{BaseURL: a.Site.Storage.BucketBaseURL}
	return listCollection(cmd.OutOrStdout(), a.Store, buckets, c, q)
}

func listCollection(out io.Writer, s *storage.Store, b storage.Buckets, c storage.Collection, q storage.Query) error {
	switch c {
	case storage.Projects:
		items, err := s.ListProjects(q)
		for _, p := range items {
			fmt.Fprintf(out, "  %-4d %-24s %s\n", p.ID, p.Slug, p.Title)
		}
		return err
	case storage.BlogPosts:
		items, err := s.ListBlogPosts(q)
		for _, p := range items {
			fmt.Fprintf(out, "  %-4d %-24s %s (%s)\n", p.ID, p.Slug, p.Title, published(p.Published))
		}
		return err
	case storage.Assets:
		items, err := s.ListAssets(q)
		for _, as := range items {
			u, uerr := b.AssetURL(as)
			if uerr != nil || u == "" {
				u = string(as.Bucket) + "/" + as.Path
			}
			fmt.Fprintf(out, "  %-4d %-24s %s\n", as.ID, as.Name, u)
		}
		return err
	case storage.TerminalCommands:
		items, err := s.ListTerminalCommands(q)
		for _, tc := range items {
			fmt.Fprintf(out, "  %-4d %-16s %-8s %s\n", tc.ID, tc.Name, tc.Kind, tc.Description)
		}
		return err
	case storage.Pages:
		items, err := s.ListPages(q)
		for _, p := range items {
			fmt.Fprintf(out, "  %-4d %-24s %s (%s)\n", p.ID, p.Slug, p.Title, published(p.Published))
		}
		return err
	case storage.SiteSettings:
		settings, err := s.Settings()
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %-24s %s\n", k, settings[k])
		}
		return nil
	}
	return fmt.Errorf("%w: %q", storage.ErrUnknownCollection, c)
}

func published(ok bool) string {
	if ok {
		return "published"
	}
	return "draft"
}

func runContentRm(cmd *cobra.Command, args []string) error {
	c, err := storage.ParseCollection(args[0])
	if err != nil {
		return err
	}
	a, err := openStore()
	if err != nil {
		return err
	}
	defer a.Close()

	if c == storage.SiteSettings {
		err = a.Store.DeleteSetting(args[1])
	} else {
		id, perr := strconv.ParseInt(args[1], 10, 64)
		if perr != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}
		err = a.Store.Delete(c, id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", c, args[1])
	return nil
}

func runContentGet(cmd *cobra.Command, args []string) error {
	a, err := openStore()
	if err != nil {
		return err
	}
	defer a.Close()

	v, ok, err := a.Store.Setting(args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("setting %q is not set", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runContentSet(cmd *cobra.Command, args []string) error {
	a, err := openStore()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Store.SetSetting(args[0], args[1]); err != nil {
		return err
	}
	a.Logger.Info("setting changed", "key", args[0])
	return nil
}
