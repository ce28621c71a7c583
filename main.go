package main

import (
	"github.com/lakesync/lakesync/logger"
	"github.com/lakesync/lakesync/protocol"
	"github.com/lakesync/lakesync/utils/safego"
)

func main() {
	defer safego.Recovery(true)

	if err := protocol.CreateRootCommand().Execute(); err != nil {
		logger.Fatal(err)
	}
}
