// Command pagepoolctl creates, destroys, serves, and snapshots paged
// storage files managed by github.com/dbkit/pagepool/pkg/storage.
package main

import (
	"fmt"
	"os"

	"github.com/dbkit/pagepool/cmd/pagepoolctl/internal/commands"
)

func main() {
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
