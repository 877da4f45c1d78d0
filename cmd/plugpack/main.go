package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/smarty/plugpack/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	home, err := os.UserHomeDir()
	if err != nil {
		logger.L.WithError(err).Fatal("Could not locate home directory.")
	}

	if err = newRootCommand(afero.NewOsFs(), home).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errRejected) {
			logger.L.WithError(err).Error("plugpack failed.")
		}
		stop()
		os.Exit(1)
	}
}

var ldflagsSoftwareVersion = "debug"
