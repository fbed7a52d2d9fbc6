package main

import (
	"context"

	"reviewlens-backend/cmd/reviewlens-cli/commands"
	"reviewlens-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "reviewlens-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
