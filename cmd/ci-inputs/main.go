package main

import (
	"os"
)

func main() {
	app := initCli()
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
