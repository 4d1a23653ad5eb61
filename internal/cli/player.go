package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerUpdateCmd())
	cmd.AddCommand(newPlayerDeleteCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerCountCmd())

	return cmd
}

// playerFields holds the writable player attributes as flags
type playerFields struct {
	name, title, race, profession string
	experience                    int
	birthday                      string
	banned                        bool
}

func (f *playerFields) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.name, "name", "", "Name, 1-12 characters")
	flags.StringVar(&f.title, "title", "", "Title, 1-30 characters")
	flags.StringVar(&f.race, "race", "", "Race: HUMAN, DWARF, ELF, GIANT, ORC, TROLL, HOBBIT")
	flags.StringVar(&f.profession, "profession", "", "Profession: WARRIOR, ROGUE, SORCERER, CLERIC, PALADIN, NAZGUL, WARLOCK, DRUID")
	flags.IntVar(&f.experience, "experience", 0, "Experience points, 0-10000000")
	flags.StringVar(&f.birthday, "birthday", "", "Birthday as YYYY-MM-DD or RFC 3339")
	flags.BoolVar(&f.banned, "banned", false, "Whether the player is banned")
}

// body returns a request containing only the flags the user set
func (f *playerFields) body(flags *pflag.FlagSet) (map[string]any, error) {
	body := map[string]any{}
	if flags.Changed("name") {
		body["name"] = f.name
	}
	if flags.Changed("title") {
		body["title"] = f.title
	}
	if flags.Changed("race") {
		body["race"] = f.race
	}
	if flags.Changed("profession") {
		body["profession"] = f.profession
	}
	if flags.Changed("experience") {
		body["experience"] = f.experience
	}
	if flags.Changed("birthday") {
		ms, err := parseDate(f.birthday)
		if err != nil {
			return nil, fmt.Errorf("--birthday: %w", err)
		}
		body["birthday"] = ms
	}
	if flags.Changed("banned") {
		body["banned"] = f.banned
	}
	return body, nil
}

// parseDate converts a date or RFC 3339 timestamp to epoch milliseconds
func parseDate(s string) (int64, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UnixMilli(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("%q is neither YYYY-MM-DD nor RFC 3339", s)
	}
	return t.UnixMilli(), nil
}

func playerPath(id string) (string, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return "", fmt.Errorf("invalid player id %q", id)
	}
	return "/rest/players/" + id, nil
}

func newPlayerCreateCmd() *cobra.Command {
	var fields playerFields

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fields.body(cmd.Flags())
			if err != nil {
				return err
			}

			var result Player
			if err := client.Post(cmd.Context(), "/rest/players", body, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	fields.register(cmd.Flags())
	for _, name := range []string{"name", "title", "race", "profession", "birthday"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0])
			if err != nil {
				return err
			}

			var result Player
			if err := client.Get(cmd.Context(), path, nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newPlayerUpdateCmd() *cobra.Command {
	var fields playerFields

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0])
			if err != nil {
				return err
			}
			body, err := fields.body(cmd.Flags())
			if err != nil {
				return err
			}

			var result Player
			if err := client.Post(cmd.Context(), path, body, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	fields.register(cmd.Flags())

	return cmd
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(cmd.Context(), path); err != nil {
				return err
			}

			output(cmd).PrintMessage("Deleted player " + args[0])
			return nil
		},
	}
}

// criteriaFlags holds the list and count filters
type criteriaFlags struct {
	name, title, race, profession string
	after, before                 string
	banned                        bool
	minExperience, maxExperience  int
	minLevel, maxLevel            int
	filter                        string
}

func (f *criteriaFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.name, "name", "", "Name substring")
	flags.StringVar(&f.title, "title", "", "Title substring")
	flags.StringVar(&f.race, "race", "", "Race")
	flags.StringVar(&f.profession, "profession", "", "Profession")
	flags.StringVar(&f.after, "after", "", "Born on or after, YYYY-MM-DD or RFC 3339 (needs --before)")
	flags.StringVar(&f.before, "before", "", "Born on or before, YYYY-MM-DD or RFC 3339 (needs --after)")
	flags.BoolVar(&f.banned, "banned", false, "Banned status")
	flags.IntVar(&f.minExperience, "min-experience", 0, "Minimum experience")
	flags.IntVar(&f.maxExperience, "max-experience", 0, "Maximum experience")
	flags.IntVar(&f.minLevel, "min-level", 0, "Minimum level")
	flags.IntVar(&f.maxLevel, "max-level", 0, "Maximum level")
	flags.StringVar(&f.filter, "filter", "", `Filter expression, e.g. 'level >= 10 AND race = "ELF"'`)
}

// values returns the query parameters for the flags the user set
func (f *criteriaFlags) values(flags *pflag.FlagSet) (url.Values, error) {
	v := url.Values{}
	strs := map[string]string{
		"name":       f.name,
		"title":      f.title,
		"race":       f.race,
		"profession": f.profession,
		"filter":     f.filter,
	}
	for flag, val := range strs {
		if flags.Changed(flag) {
			v.Set(flag, val)
		}
	}

	dates := map[string]string{"after": f.after, "before": f.before}
	for flag, val := range dates {
		if !flags.Changed(flag) {
			continue
		}
		ms, err := parseDate(val)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", flag, err)
		}
		v.Set(flag, strconv.FormatInt(ms, 10))
	}

	ints := map[string]struct {
		param string
		val   int
	}{
		"min-experience": {"minExperience", f.minExperience},
		"max-experience": {"maxExperience", f.maxExperience},
		"min-level":      {"minLevel", f.minLevel},
		"max-level":      {"maxLevel", f.maxLevel},
	}
	for flag, p := range ints {
		if flags.Changed(flag) {
			v.Set(p.param, strconv.Itoa(p.val))
		}
	}

	if flags.Changed("banned") {
		v.Set("banned", strconv.FormatBool(f.banned))
	}
	return v, nil
}

func newPlayerListCmd() *cobra.Command {
	var (
		criteria   criteriaFlags
		order      string
		pageNumber int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of players",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := criteria.values(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("order") {
				params.Set("order", order)
			}
			if cmd.Flags().Changed("page") {
				params.Set("pageNumber", strconv.Itoa(pageNumber))
			}
			if cmd.Flags().Changed("page-size") {
				params.Set("pageSize", strconv.Itoa(pageSize))
			}

			result := []Player{}
			if err := client.Get(cmd.Context(), "/rest/players", params, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	criteria.register(cmd.Flags())
	cmd.Flags().StringVar(&order, "order", "ID", "Sort order: ID, NAME, EXPERIENCE, BIRTHDAY, LEVEL")
	cmd.Flags().IntVar(&pageNumber, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 3, "Page size")

	return cmd
}

func newPlayerCountCmd() *cobra.Command {
	var criteria criteriaFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the players matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := criteria.values(cmd.Flags())
			if err != nil {
				return err
			}

			var result CountResult
			if err := client.Get(cmd.Context(), "/rest/players/count", params, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	criteria.register(cmd.Flags())

	return cmd
}
