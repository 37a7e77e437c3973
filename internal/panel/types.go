package panel

import "time"

// NodesPath is the application API endpoint listing every node.
const NodesPath = "/api/application/nodes"

// Node is one panel node with its allocated resources.
type Node struct {
	Name     string
	MemoryMB int64
	DiskMB   int64

	// Uptime is only meaningful when UptimeKnown is true. The node listing carries no
	// uptime, so it is filled in by an UptimeSource.
	Uptime      time.Duration
	UptimeKnown bool
}

// Snapshot is the outcome of one fetch: either reachable with nodes in panel order,
// or unreachable with the collapsed cause in Err.
type Snapshot struct {
	Reachable bool
	Nodes     []Node
	Err       error
	FetchedAt time.Time
}

// Unreachable returns a failed snapshot carrying err.
func Unreachable(err error, at time.Time) Snapshot {
	return Snapshot{Err: err, FetchedAt: at}
}

// nodeList is the wire shape of GET /api/application/nodes.
type nodeList struct {
	Data *[]nodeObject `json:"data"`
}

type nodeObject struct {
	Attributes *nodeAttributes `json:"attributes"`
}

type nodeAttributes struct {
	Name               string `json:"name"`
	AllocatedResources struct {
		Memory int64 `json:"memory"`
		Disk   int64 `json:"disk"`
	} `json:"allocated_resources"`
}
