package cmd

import (
	"github.com/urfave/cli"

	"github.com/lapidary/lustre/log"
)

var logger = log.New("lustre")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
