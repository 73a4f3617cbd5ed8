package redis

import "fmt"

// Key prefix for all server data
const keyPrefix = "ccgame"

// snapshotKey holds the latest rule engine snapshot
func snapshotKey() string {
	return fmt.Sprintf("%s:state:latest", keyPrefix)
}

// infoKey holds the latest server info
func infoKey() string {
	return fmt.Sprintf("%s:info:latest", keyPrefix)
}

// SnapshotChannel is the pub/sub channel snapshots are published on
func SnapshotChannel() string {
	return fmt.Sprintf("%s:state", keyPrefix)
}

// InfoChannel is the pub/sub channel server info is published on
func InfoChannel() string {
	return fmt.Sprintf("%s:info", keyPrefix)
}
