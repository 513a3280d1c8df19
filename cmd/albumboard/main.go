package main

import (
	"context"

	"albumboard/cmd/albumboard/commands"
	"albumboard/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.SetupFromEnv(ctx, "albumboard")
	commands.ExecuteContext(ctx)
}
