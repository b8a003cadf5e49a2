package main

import (
	"waykit/cmd/waykit/commands"
	"waykit/lib/osutil"
)

func main() {
	commands.ExecuteContext(osutil.SignalContext())
}
