package main

import (
	"os"
	"slices"

	bmErrors "github.com/buildmon/cli/internal/errors"
	"github.com/buildmon/cli/internal/version"
	"github.com/buildmon/cli/pkg/cmd/factory"
	"github.com/buildmon/cli/pkg/cmd/root"
)

func main() {
	f := factory.New(version.Version)

	handler := bmErrors.NewHandler().
		WithVerbose(slices.Contains(os.Args[1:], "--debug"))

	rootCmd, err := root.NewCmdRoot(f)
	if err != nil {
		handler.Handle(err)
		return
	}

	if err := rootCmd.Execute(); err != nil {
		handler.Handle(err)
	}
}
