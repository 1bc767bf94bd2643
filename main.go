package main

import (
	"fjacquet/grocelist/cmd/categories"
	"fjacquet/grocelist/cmd/items"
	"fjacquet/grocelist/cmd/root"
	"fjacquet/grocelist/internal/config"
	"fjacquet/grocelist/internal/logging"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	config.LoadEnv(nil)

	// 2. Logger for anything that happens before the config is read
	root.Log = logging.NewLogrusAdapter(
		config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info"),
		config.GetEnv(config.EnvPrefix+"_LOG_FORMAT", "text"))

	// 3. Initialize root command and add all subcommands
	root.Init()
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(items.Cmd)
}

func main() {
	err := root.Cmd.Execute()
	root.Close()
	if err != nil {
		root.Log.Fatalf("%v", err)
	}
}
