package main

import (
	"fmt"
	"os"

	"github.com/climatemonitor/chartfmt/pkg/cli"
	"github.com/climatemonitor/chartfmt/pkg/logging"
	"github.com/climatemonitor/chartfmt/pkg/types"
)

var version = "dev"

func main() {
	logging.InitConsoleStdErrLog()
	cliInstance := &types.CLI{}
	rootCmd := cli.NewRootCommand(cliInstance, version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
