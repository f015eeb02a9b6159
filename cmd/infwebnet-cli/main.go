package main

import (
	"infwebnet-backend/cmd/infwebnet-cli/commands"
	"infwebnet-backend/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
