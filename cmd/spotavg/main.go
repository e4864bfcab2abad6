package main

import (
	"os"

	"github.com/StrathCole/spotavg/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
