package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vihackerframework/vihacker-go/common"
	"github.com/vihackerframework/vihacker-go/pkg/config"
)

const defaultLegacyDBFile = "/var/lib/vihacker/db/legacy.db"

var _logger *Logger

type MigrationTool interface {
	IsMigrationNeeded() (bool, error)
	PreMigrate() error
	Migrate() error
	PostMigrate() error
}

func main() {
	configFlag := flag.String("c", "", "config address")
	legacyFlag := flag.String("legacy", defaultLegacyDBFile, "legacy db file")
	versionFlag := flag.Bool("v", false, "version")
	debugFlag := flag.Bool("d", false, "debug")
	flag.Parse()

	if *versionFlag {
		fmt.Println(common.Version)
		os.Exit(0)
	}

	_logger = NewLogger()

	if *debugFlag {
		_logger.DebugMode = true
	}

	config.InitSetup(*configFlag)

	migrationTools := []MigrationTool{
		NewMigrationToolForLegacyEvents(*legacyFlag, config.AppInfo.DBPath),
	}

	if err := run(migrationTools); err != nil {
		_logger.Error("Migration failed: %s", err)
		os.Exit(1)
	}
}

// run picks the first tool that reports a migration is needed and runs it.
func run(tools []MigrationTool) error {
	var selectedMigrationTool MigrationTool

	for _, tool := range tools {
		migrationNeeded, err := tool.IsMigrationNeeded()
		if err != nil {
			return err
		}

		if migrationNeeded {
			selectedMigrationTool = tool
			break
		}
	}

	if selectedMigrationTool == nil {
		_logger.Info("No migration to proceed.")
		return nil
	}

	if err := selectedMigrationTool.PreMigrate(); err != nil {
		return err
	}

	if err := selectedMigrationTool.Migrate(); err != nil {
		return err
	}

	return selectedMigrationTool.PostMigrate()
}
