package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "px",
		Usage: "Extract and slice chat-export JSON into checksummed conversation slices",
		Description: `
  _ __  __ _ _ _ __ _ ___| |_ _  _
 | '_ \/ _' | '_/ _' (_-<| ' \ || |
 | .__/\__,_|_| \__,_/__/|_||_\_,_|
 |_|

 The axe for conversations — one thread out, many slices in.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "warn",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			extractCmd(),
			sliceCmd(),
			splitCmd(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
