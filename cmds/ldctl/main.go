package main

import (
	"fmt"
	"os"

	"github.com/mandelsoft/ldraw/cmds/ldctl/app"
)

func Error(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

func main() {
	cmd := app.New()
	cmd.SetArgs(os.Args[1:])
	err := cmd.Execute()
	if err != nil {
		Error("%s", err.Error())
	}
}
