package main

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"github.com/doni-wahyudi/stillmove-planner-sub001/app"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/osutil"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pathutil"
	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/static"
)

func run(args []string) error {
	// a missing .env file is not an error
	_ = godotenv.Load()

	err := pathutil.Initialize()
	if err != nil {
		return err
	}

	err = static.Install(xdg.DataHome)
	if err != nil {
		return err
	}

	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		pterm.Error.Println(err)
		osutil.Exit(osutil.ExitError)
	}
}
