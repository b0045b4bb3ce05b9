// cmd/degbridge/main.go
package main

import (
	"degbridge/internal/appshell"
	"degbridge/internal/bridgeapp"
)

func main() {
	appshell.Main(bridgeapp.RunContext)
}
