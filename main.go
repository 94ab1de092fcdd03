package main

import (
	"wedding-invitations/core/logger"
	"wedding-invitations/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
