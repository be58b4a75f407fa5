package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/config"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config and initialize the database",
		Long: `Write ~/.lifeassist/config.yaml (or --config) with default settings and
create the lifeassist database with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			force, _ := cmd.Flags().GetBool("force")
			user, _ := cmd.Flags().GetString("user")

			cfg := config.Default()
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Printf("Config already exists at %s (use --force to overwrite)\n", path)
				loaded, err := config.Load(path)
				if err != nil {
					return err
				}
				cfg = loaded
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check config: %w", err)
			} else {
				cfg.Identity.UserID = user
				if err := config.Save(path, cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", path)
			}

			database, err := db.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			fmt.Printf("✓ Database initialized at %s\n", cfg.Database.Path)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  lifeassist user register <public-key> --name \"Your Name\"")
			fmt.Println("  lifeassist chore add \"Water plants\" --every 3")

			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return cmd
}
