package main

import (
	"os"

	"github.com/cleardesk/cleardesk/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
