// finsim is the command-line front end of the paper-trading simulator. It
// opens the same store as the HTTP server, so trades made here show up there.
package main

import (
	"fmt"
	"os"
)

func main() {
	c := &cli{}
	root := c.rootCmd()
	err := root.Execute()
	c.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
