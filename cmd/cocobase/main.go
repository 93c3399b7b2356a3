package main

import (
	"os"

	"github.com/cocobase/cocobase-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
