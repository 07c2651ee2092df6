package main

import (
	"os"

	"github.com/abnew123/expense-ledger/cmd/category"
	exportcmd "github.com/abnew123/expense-ledger/cmd/export"
	"github.com/abnew123/expense-ledger/cmd/ingest"
	"github.com/abnew123/expense-ledger/cmd/list"
	"github.com/abnew123/expense-ledger/cmd/root"
)

func main() {
	root.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(category.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(exportcmd.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
