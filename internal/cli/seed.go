package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/rpgroster/internal/dependencies/clock"
	"github.com/mcoot/rpgroster/internal/dependencies/random"
	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/roster"
)

func newSeedCmd() *cobra.Command {
	var (
		count    int
		file     string
		randSeed uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create players from a roster file or at random",
		RunE: func(cmd *cobra.Command, args []string) error {
			var candidates []model.PlayerPatch
			if file != "" {
				loaded, err := roster.LoadFile(file)
				if err != nil {
					return err
				}
				candidates = loaded
			} else {
				if count <= 0 {
					return fmt.Errorf("--count must be positive")
				}
				var rnd random.Random = random.New()
				if cmd.Flags().Changed("rand-seed") {
					rnd = random.NewSeeded(randSeed)
				}
				candidates = roster.NewGenerator(rnd, clock.New()).Generate(count)
			}

			created := 0
			for _, c := range candidates {
				if err := client.Post(cmd.Context(), "/rest/players", candidateBody(c), nil); err != nil {
					return fmt.Errorf("created %d of %d players: %w", created, len(candidates), err)
				}
				created++
			}

			output(cmd).PrintMessage(fmt.Sprintf("Created %d players", created))
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "Number of random players to create")
	cmd.Flags().Uint64Var(&randSeed, "rand-seed", 0, "Seed for a reproducible random roster")
	cmd.Flags().StringVar(&file, "file", "", "YAML roster file to import instead of generating players")

	return cmd
}

// candidateBody renders a candidate in the API's request shape
func candidateBody(c model.PlayerPatch) map[string]any {
	body := map[string]any{}
	if c.Name != nil {
		body["name"] = *c.Name
	}
	if c.Title != nil {
		body["title"] = *c.Title
	}
	if c.Race != nil {
		body["race"] = c.Race.String()
	}
	if c.Profession != nil {
		body["profession"] = c.Profession.String()
	}
	if c.Experience != nil {
		body["experience"] = *c.Experience
	}
	if c.Birthday != nil {
		body["birthday"] = c.Birthday.UnixMilli()
	}
	if c.Banned != nil {
		body["banned"] = *c.Banned
	}
	return body
}
