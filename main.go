package main

import (
	"fmt"
	"os"

	"fjacquet/planned-spending/cmd/importbook"
	"fjacquet/planned-spending/cmd/list"
	"fjacquet/planned-spending/cmd/report"
	"fjacquet/planned-spending/cmd/root"
)

func init() {
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(importbook.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
