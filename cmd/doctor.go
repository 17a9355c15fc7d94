package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/taskcli/taskcli/internal/config"
	"github.com/taskcli/taskcli/internal/task"
)

// doctorCommand checks config and task file validity.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskcli doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Taskcli Doctor")
	fmt.Println("==============")
	fmt.Println()

	allOK := true

	fmt.Println("Config:")
	fmt.Printf("  Task file: %s\n", cfg.TaskFile)
	fmt.Printf("  Log level: %s\n", cfg.LogLevel)
	fmt.Printf("  Log format: %s\n", cfg.LogFormat)
	fmt.Println()

	fmt.Printf("Task file: %s\n", cfg.TaskFile)
	data, err := os.ReadFile(cfg.TaskFile)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created on first add)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	default:
		result := task.ValidateSnapshot(data)
		if result.Valid {
			fmt.Println("  ✅ Valid")
		} else {
			fmt.Println("  ❌ Validation failed:")
			for _, e := range result.Errors {
				fmt.Printf("     - %v\n", e)
			}
			allOK = false
		}

		var tasks []task.Task
		if err := json.Unmarshal(data, &tasks); err == nil {
			fmt.Printf("  Tasks: %d\n", len(tasks))
			if *verbose {
				task.SortByID(tasks)
				for _, t := range tasks {
					fmt.Printf("    - [%s] %d: %s\n", t.Status, t.ID, t.Description)
				}
			}
		}
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
