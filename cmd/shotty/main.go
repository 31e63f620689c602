// shotty - list and control EC2 instances, volumes and snapshots,
// optionally scoped by the Project tag.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, newEC2Cloud))
}
