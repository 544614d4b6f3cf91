package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"travelpoints/internal/platform/migrations"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|to N|version]",
		Short: "Apply or roll back the database schema",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) > 0 {
				action = args[0]
			}

			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if action == "version" {
				return printVersion(cmd, db)
			}

			target, err := migrationTarget(action, args[1:])
			if err != nil {
				return err
			}
			res, err := migrations.Migrate(db, target)
			if err != nil {
				return err
			}
			if res.NoChange {
				cmd.Printf("schema already at version %d\n", res.To)
				return nil
			}
			cmd.Printf("migrated schema from version %d to %d\n", res.From, res.To)
			return nil
		},
	}
	return cmd
}

// migrationTarget maps a migrate action to a target version.
func migrationTarget(action string, rest []string) (int, error) {
	switch action {
	case "up":
		return migrations.Latest, nil
	case "down":
		return 0, nil
	case "to":
		if len(rest) != 1 {
			return 0, fmt.Errorf("migrate to needs a version")
		}
		v, err := strconv.Atoi(rest[0])
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid version %q", rest[0])
		}
		return v, nil
	default:
		return 0, fmt.Errorf("unknown migrate action %q", action)
	}
}

func printVersion(cmd *cobra.Command, db *sql.DB) error {
	version, dirty, err := migrations.Version(db)
	if err != nil {
		return err
	}
	cmd.Printf("schema version %d (dirty: %t)\n", version, dirty)
	return nil
}
